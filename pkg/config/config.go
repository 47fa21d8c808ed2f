package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string
	LogLevel    string

	Ports []string

	DatabaseURLs []string

	JWTSecret []byte
	TokenTTL  time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string

	UploadDir      string
	MaxUploadBytes int64

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func Load() Config {
	ports := CSV(os.Getenv("PORTS"))
	if len(ports) == 0 {
		if p := os.Getenv("SERVER_PORT"); p != "" {
			ports = []string{p}
		} else {
			ports = []string{"5000", "5001", "5002"}
		}
	}

	dsns := CSV(os.Getenv("DATABASE_URLS"))
	if len(dsns) == 0 && os.Getenv("DATABASE_URL") != "" {
		dsns = []string{os.Getenv("DATABASE_URL")}
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "campus-complaints"),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		Ports: ports,

		DatabaseURLs: dsns,

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:  EnvDurationDefault("TOKEN_TTL", 7*24*time.Hour),

		AdminName:     EnvDefault("ADMIN_NAME", "Administrator"),
		AdminEmail:    EnvDefault("ADMIN_EMAIL", "admin@campus.com"),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", "Admin@123456"),

		UploadDir:      EnvDefault("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(EnvIntDefault("MAX_UPLOAD_BYTES", 5*1024*1024)),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   EnvDefault("KAFKA_TOPIC", "complaint_events"),
		KafkaGroupID: EnvDefault("KAFKA_GROUP_ID", "complaint-indexer"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "complaints"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
