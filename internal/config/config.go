package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	Environment      string
	HTTPPort         string
	DatabaseURL      string
	JWTSecret        string
	SessionTokenTTL  time.Duration
	ResetTokenTTL    time.Duration
	UploadServiceURL string
	FrontendURL      string
	KafkaBrokers     []string
	MailTopic        string
	MailGroupID      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	OutboxKey        string
	OutboxCapacity   int
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	MailFrom         string
	ServiceName      string
	RateLimitRPM     int

	TelemetryEndpoint string
	TelemetryInsecure bool

	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSAllowCredentials bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:          getEnv("APP_ENV", "development"),
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		SessionTokenTTL:      getDuration("SESSION_TOKEN_TTL", 15*24*time.Hour),
		ResetTokenTTL:        getDuration("RESET_TOKEN_TTL", 15*time.Minute),
		UploadServiceURL:     os.Getenv("UPLOAD_SERVICE_URL"),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:3000"),
		KafkaBrokers:         getList("KAFKA_BROKERS", []string{"localhost:9092"}),
		MailTopic:            getEnv("MAIL_TOPIC", "send-mail"),
		MailGroupID:          getEnv("MAIL_GROUP_ID", "mail-service-group"),
		RedisAddr:            getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getInt("REDIS_DB", 0),
		OutboxKey:            getEnv("OUTBOX_KEY", "workora:outbox:send-mail"),
		OutboxCapacity:       getInt("OUTBOX_CAPACITY", 1024),
		SMTPHost:             getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:             getInt("SMTP_PORT", 587),
		SMTPUser:             os.Getenv("SMTP_USER"),
		SMTPPassword:         os.Getenv("SMTP_PASS"),
		MailFrom:             getEnv("MAIL_FROM", `"Ora Team" <no-reply@ora.com>`),
		ServiceName:          getEnv("SERVICE_NAME", "work-ora"),
		RateLimitRPM:         getInt("RATE_LIMIT_RPM", 600),
		TelemetryEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TelemetryInsecure:    getBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		CORSAllowedOrigins:   getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		CORSAllowedMethods:   getList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		CORSAllowedHeaders:   getList("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type"}),
		CORSAllowCredentials: getBool("CORS_ALLOW_CREDENTIALS", false),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// LoadMailer reads the subset needed by the mail consumer binary.
func LoadMailer() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:  getEnv("APP_ENV", "development"),
		KafkaBrokers: getList("KAFKA_BROKERS", []string{"localhost:9092"}),
		MailTopic:    getEnv("MAIL_TOPIC", "send-mail"),
		MailGroupID:  getEnv("MAIL_GROUP_ID", "mail-service-group"),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		MailFrom:     getEnv("MAIL_FROM", `"Ora Team" <no-reply@ora.com>`),
		ServiceName:  getEnv("SERVICE_NAME", "work-ora-mailer"),
	}

	if cfg.SMTPUser == "" {
		return Config{}, fmt.Errorf("SMTP_USER is required")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(v) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getList(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok {
		parts := strings.Split(v, ",")
		var cleaned []string
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			return cleaned
		}
	}
	return def
}
