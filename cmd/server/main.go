package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/campus_complaints/internal/credentials"
	"github.com/Skotchmaster/campus_complaints/internal/events"
	"github.com/Skotchmaster/campus_complaints/internal/httpserver"
	"github.com/Skotchmaster/campus_complaints/internal/repo"
	"github.com/Skotchmaster/campus_complaints/internal/search"
	"github.com/Skotchmaster/campus_complaints/internal/service"
	"github.com/Skotchmaster/campus_complaints/internal/storage"
	"github.com/Skotchmaster/campus_complaints/pkg/config"
	pkgdb "github.com/Skotchmaster/campus_complaints/pkg/db"
	"github.com/Skotchmaster/campus_complaints/pkg/logging"
	loggingmw "github.com/Skotchmaster/campus_complaints/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyList(cfg.DatabaseURLs, "DATABASE_URLS")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, idx, err := pkgdb.OpenFirst(initCtx, cfg.DatabaseURLs)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	logger.Info("db_connected", "endpoint", idx+1, "of", len(cfg.DatabaseURLs))

	store := repo.New(db)
	if err := store.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	creds := credentials.New(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := &service.AuthService{Users: store, Creds: creds}

	bootCtx, bootCancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 10*time.Second)
	_, _, err = authSvc.BootstrapAdmin(bootCtx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	bootCancel()
	if err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	blobs, err := storage.NewDiskStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("events_enabled", "topic", cfg.KafkaTopic)
	}

	complaintSvc := &service.ComplaintService{
		Store:         store,
		Users:         store,
		Blobs:         blobs,
		Events:        publisher,
		MaxPhotoBytes: cfg.MaxUploadBytes,
	}

	if cfg.ESURL != "" {
		esCtx, esCancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := search.NewClient(esCtx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err == nil {
			ix := &search.Indexer{ES: client, Index: cfg.ESIndex}
			if err = ix.EnsureIndex(esCtx); err == nil {
				complaintSvc.Searcher = ix
				logger.Info("search_enabled", "index", cfg.ESIndex)
			}
		}
		esCancel()
		if err != nil {
			logger.Warn("search_disabled", "error", err)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dK", (cfg.MaxUploadBytes+1<<20)/1024)))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:      &httpserver.AuthHTTP{Svc: authSvc},
		ComplaintHandler: &httpserver.ComplaintHTTP{Svc: complaintSvc},
		AuthMW:           httpserver.NewAuthMiddleware(creds),
		Ping:             func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
		UploadDir:        cfg.UploadDir,
		SearchEnabled:    complaintSvc.Searcher != nil,
	})

	ln, portIdx, err := httpserver.ListenFirst("", cfg.Ports)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	if portIdx > 0 {
		logger.Warn("port_fallback", "wanted", cfg.Ports[0], "bound", cfg.Ports[portIdx])
	}

	srv := &http.Server{
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("events_close", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close", "error", err)
	}

	logger.Info("shutdown_complete")
}
