package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the process configuration, read from the environment and an optional .env file.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT" validate:"required"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	StoreDriver   string        `mapstructure:"STORE_DRIVER" validate:"oneof=memory mongo sqlite postgres"`
	StoreTimeout  time.Duration `mapstructure:"STORE_TIMEOUT" validate:"gt=0"`
	MongoURI      string        `mapstructure:"MONGO_URI" validate:"required_if=StoreDriver mongo"`
	MongoDatabase string        `mapstructure:"MONGO_DATABASE" validate:"required_if=StoreDriver mongo"`
	DatabaseDSN   string        `mapstructure:"DATABASE_DSN" validate:"required_if=StoreDriver sqlite,required_if=StoreDriver postgres"`

	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	RabbitMQExchange string `mapstructure:"RABBITMQ_EXCHANGE"`
	RabbitMQQueue    string `mapstructure:"RABBITMQ_QUEUE"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB" validate:"gte=0"`
	MenuCacheTTL  time.Duration `mapstructure:"MENU_CACHE_TTL" validate:"gt=0"`

	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	PaymentCurrency string `mapstructure:"PAYMENT_CURRENCY" validate:"required,len=3"`
}

var defaults = map[string]any{
	"APP_PORT":          ":8080",
	"LOG_LEVEL":         "info",
	"STORE_DRIVER":      DriverMemory,
	"STORE_TIMEOUT":     "10s",
	"MONGO_URI":         "",
	"MONGO_DATABASE":    "ivr",
	"DATABASE_DSN":      "",
	"RABBITMQ_URL":      "",
	"RABBITMQ_EXCHANGE": "ivr.orders",
	"RABBITMQ_QUEUE":    "ivr.order_events",
	"REDIS_ADDR":        "",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"MENU_CACHE_TTL":    "5m",
	"STRIPE_SECRET_KEY": "",
	"PAYMENT_CURRENCY":  "sar",
}

// Load reads envFiles into the process environment (missing files are skipped), then builds the
// Config from the environment on top of the defaults.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
