package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/campus_complaints/internal/events"
	"github.com/Skotchmaster/campus_complaints/internal/search"
	"github.com/Skotchmaster/campus_complaints/pkg/config"
	"github.com/Skotchmaster/campus_complaints/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmptyList(cfg.KafkaBrokers, "KAFKA_BROKERS")
	config.MustNonEmpty(cfg.ESURL, "ES_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName+"-indexer")
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := search.NewClient(initCtx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		cancel()
		log.Fatalf("elasticsearch: %v", err)
	}
	ix := &search.Indexer{ES: client, Index: cfg.ESIndex}
	err = ix.EnsureIndex(initCtx)
	cancel()
	if err != nil {
		log.Fatalf("ensure index: %v", err)
	}

	consumer := events.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logging.IntoContext(ctx, logger)

	logger.Info("indexer_started", "topic", cfg.KafkaTopic, "group", cfg.KafkaGroupID, "index", cfg.ESIndex)
	runErr := consumer.Run(ctx, ix.Apply)
	stop()

	if err := consumer.Close(); err != nil {
		logger.Error("consumer_close", "error", err)
	}
	if runErr != nil {
		log.Fatalf("indexer: %v", runErr)
	}
	logger.Info("indexer_stopped")
}
