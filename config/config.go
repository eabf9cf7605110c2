package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`

	// Seat inventory.
	TripLockMode           string `mapstructure:"TRIP_LOCK_MODE"` // "local" or "redis"
	TripLockTTLSeconds     int    `mapstructure:"TRIP_LOCK_TTL_SECONDS"`
	ReservationMaxAttempts int    `mapstructure:"RESERVATION_MAX_ATTEMPTS"`

	// Payments. An empty StripeKey selects the simulated processor.
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripePaymentMethod string `mapstructure:"STRIPE_PAYMENT_METHOD"` // fallback when a request has no token; test mode only
	PaymentCurrency     string `mapstructure:"PAYMENT_CURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	// A .env file (or ENV_FILE) seeds the environment for local runs; real
	// environment variables win.
	envPath := os.Getenv("ENV_FILE")
	if envPath == "" {
		envPath = ".env"
	}
	_ = godotenv.Load(envPath)

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("DATABASE_NAME", "busfleet")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_DB", 0)
	viper.SetDefault("TRIP_LOCK_MODE", "local")
	viper.SetDefault("TRIP_LOCK_TTL_SECONDS", 10)
	viper.SetDefault("RESERVATION_MAX_ATTEMPTS", 5)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_PAYMENT_METHOD", "")
	viper.SetDefault("PAYMENT_CURRENCY", "lkr")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesRedisLocks reports whether trip locks should be shared across processes.
func UsesRedisLocks() bool {
	return AppConfig.TripLockMode == "redis"
}
