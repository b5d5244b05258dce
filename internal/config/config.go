package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBHost     string `envconfig:"DB_HOST"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"studentmart"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	AppPort    string `envconfig:"APP_PORT" default:"8080"`
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	JWTSecret  string `envconfig:"JWT_SECRET"`

	// Unsigned upload endpoint of the external image host.
	ImageUploadURL    string `envconfig:"IMAGE_UPLOAD_URL"`
	ImageUploadPreset string `envconfig:"IMAGE_UPLOAD_PRESET" default:"studentmart"`
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return &cfg
}
