package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env file, but don't fail if missing (environment might be set otherwise)
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// LoadFile reads a YAML file as the base layer. Environment variables
// always override values from the file.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config with every default applied.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:           "Femi9outfit",
			DigestSchedule: "0 0 9 * * *",
			DigestAfter:    24 * time.Hour,
		},
		Mail: MailConfig{
			Mailer: "smtp",
			Port:   587,
		},
		Database: DatabaseConfig{
			Connection: "pgsql",
			Port:       "5432",
			SSLMode:    "require",
			Table:      "jobs",
		},
		Redis: RedisConfig{
			Host: "127.0.0.1",
			Port: "6379",
		},
		Cache: CacheConfig{
			Store: "none",
			Table: "cache",
			TTL:   10 * time.Minute,
		},
		Queue: QueueConfig{
			Connection: "sync",
			Name:       "mail",
			MaxTries:   1,
		},
	}
}
