package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pixelsaas/media-api/internal/auth"
)

// Config holds all service configuration, environment-sourced. Required
// values are checked up front so a missing credential fails at startup, not
// mid-request.
type Config struct {
	Service   ServiceConfig
	Database  DatabaseConfig
	MediaHost MediaHostConfig
	Auth      AuthConfig
	Outbox    OutboxConfig
	Reconcile ReconcileConfig
}

type ServiceConfig struct {
	Name     string
	Port     int
	LogLevel string
}

type DatabaseConfig struct {
	URL string
}

type MediaHostConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type AuthConfig struct {
	// Sessions maps bearer tokens to user ids (static verifier).
	Sessions map[string]string
}

type OutboxConfig struct {
	Brokers   []string
	Topic     string
	Interval  time.Duration
	BatchSize int
}

type ReconcileConfig struct {
	Attempts int
	Delay    time.Duration
}

// Load reads configuration from the environment.
func Load(serviceName string) (*Config, error) {
	sessions, err := auth.ParseSessionKeys(os.Getenv("SESSION_KEYS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Service: ServiceConfig{
			Name:     serviceName,
			Port:     getEnvInt("PORT", 8081),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		MediaHost: MediaHostConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Folder:    getEnv("UPLOAD_FOLDER", "video-uploads"),
		},
		Auth: AuthConfig{
			Sessions: sessions,
		},
		Outbox: OutboxConfig{
			Brokers:   []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:     getEnv("KAFKA_TOPIC", "video-events"),
			Interval:  getEnvDuration("OUTBOX_INTERVAL", 5*time.Second),
			BatchSize: getEnvInt("OUTBOX_BATCH_SIZE", 100),
		},
		Reconcile: ReconcileConfig{
			Attempts: getEnvInt("RECONCILE_ATTEMPTS", 3),
			Delay:    getEnvDuration("RECONCILE_DELAY", 2*time.Second),
		},
	}

	return cfg, cfg.Validate()
}

// Validate reports the first missing required value with a clear diagnostic.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Service.Port)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.MediaHost.CloudName == "" {
		return fmt.Errorf("CLOUDINARY_CLOUD_NAME is required")
	}
	if c.MediaHost.APIKey == "" {
		return fmt.Errorf("CLOUDINARY_API_KEY is required")
	}
	if c.MediaHost.APISecret == "" {
		return fmt.Errorf("CLOUDINARY_API_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
