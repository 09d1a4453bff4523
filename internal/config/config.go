package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// SMTPConfig holds the mail transport credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL string
	Port        string

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	OpenAIKey     string
	OpenAIBaseURL string
	SenderName    string

	SMTP SMTPConfig

	CardBucket string
	CardPrefix string
	AWSRegion  string

	DispatchInterval time.Duration
	DispatchEnabled  bool
}

// Load reads configuration from environment variables and applies sane
// defaults. Only the values the process cannot run without are required.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnv("PORT", "8080"),

		RabbitUser: getEnv("RABBITMQ_USER", "guest"),
		RabbitPass: getEnv("RABBITMQ_PASS", "guest"),
		RabbitHost: getEnv("RABBITMQ_HOST", "localhost"),
		RabbitPort: getEnv("RABBITMQ_PORT", "5672"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		SenderName:    getEnv("SENDER_NAME", ""),

		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     parseInt(getEnv("SMTP_PORT", "587")),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},

		CardBucket: getEnv("CARD_BUCKET", "business-cards"),
		CardPrefix: getEnv("CARD_PREFIX", "business_cards/"),
		AWSRegion:  getEnv("AWS_REGION", "us-east-1"),

		DispatchInterval: parseDuration(getEnv("DISPATCH_INTERVAL", "1m")),
		DispatchEnabled:  getEnv("DISPATCH_ENABLED", "true") == "true",
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseInt(input string) int {
	n, err := strconv.Atoi(input)
	if err != nil {
		return 587
	}
	return n
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return time.Minute
	}
	return d
}
