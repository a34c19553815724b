package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	OTP      OTPConfig
	Booking  BookingConfig
	Notify   NotifyConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxConns     int32
	QueryTimeout time.Duration
}

type SessionConfig struct {
	ExpiryHours int
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
	MaxAttempts   int
}

type BookingConfig struct {
	// ReferenceMaxAttempts bounds reference number regeneration on collision.
	ReferenceMaxAttempts int
}

type NotifyConfig struct {
	RetryAttempts int
	RetryBackoff  time.Duration
	SendTimeout   time.Duration
}

type RabbitMQConfig struct {
	URL   string
	Queue string
}

type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CatalogCacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "carwash-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_QUERY_TIMEOUT", "5s")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24*30)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 5)
	viper.SetDefault("OTP_LENGTH", 4)
	viper.SetDefault("OTP_MAX_ATTEMPTS", 5)
	viper.SetDefault("BOOKING_REFERENCE_MAX_ATTEMPTS", 5)
	viper.SetDefault("NOTIFY_RETRY_ATTEMPTS", 3)
	viper.SetDefault("NOTIFY_RETRY_BACKOFF", "500ms")
	viper.SetDefault("NOTIFY_SEND_TIMEOUT", "10s")
	viper.SetDefault("RABBITMQ_QUEUE", "carwash.notifications")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CATALOG_CACHE_TTL", "60s")

	// .env is optional, containers pass plain environment variables
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			LogPath:         viper.GetString("LOG_PATH"),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			Name:         viper.GetString("DB_NAME"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASS"),
			MaxConns:     viper.GetInt32("DB_MAX_CONNS"),
			QueryTimeout: viper.GetDuration("DB_QUERY_TIMEOUT"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        viper.GetInt("OTP_LENGTH"),
			MaxAttempts:   viper.GetInt("OTP_MAX_ATTEMPTS"),
		},
		Booking: BookingConfig{
			ReferenceMaxAttempts: viper.GetInt("BOOKING_REFERENCE_MAX_ATTEMPTS"),
		},
		Notify: NotifyConfig{
			RetryAttempts: viper.GetInt("NOTIFY_RETRY_ATTEMPTS"),
			RetryBackoff:  viper.GetDuration("NOTIFY_RETRY_BACKOFF"),
			SendTimeout:   viper.GetDuration("NOTIFY_SEND_TIMEOUT"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   viper.GetString("RABBITMQ_URL"),
			Queue: viper.GetString("RABBITMQ_QUEUE"),
		},
		Redis: RedisConfig{
			Addr:            viper.GetString("REDIS_ADDR"),
			Password:        viper.GetString("REDIS_PASSWORD"),
			DB:              viper.GetInt("REDIS_DB"),
			CatalogCacheTTL: viper.GetDuration("CATALOG_CACHE_TTL"),
		},
	}

	return config, nil
}
