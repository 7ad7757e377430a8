package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	HTTPAddr       string
	Environment    string
	AdminAPIKey    string
	JWTSecret      string
	KafkaBrokers   []string
	MigrationsPath string
}

func Load() (*Config, error) {
	// .env is optional; deployments usually set plain environment variables
	if err := godotenv.Load(".env"); err == nil {
		log.Println("loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		Environment:    os.Getenv("ENV"),
		AdminAPIKey:    os.Getenv("ADMIN_API_KEY"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":4000"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "./migrations"
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
