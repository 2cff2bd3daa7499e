package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DatabaseConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Stock  StockConfig
	SMTP   SMTPConfig
}

type ServerConfig struct {
	Addr string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type StockConfig struct {
	// OldStockMonths is the staleness window for the old-stock report.
	OldStockMonths int
}

type SMTPConfig struct {
	Server       string
	Port         string
	User         string
	Password     string
	From         string
	To           string
	AuthDisabled bool
}

// Load reads configuration from an optional .env file and the environment.
// Environment variables always win over the file.
func Load() *Config {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("no .env file found, using environment variables: %v", err)
	}
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 15)
	viper.SetDefault("REFRESH_TOKEN_TTL_HOURS", 24*7)
	viper.SetDefault("OLD_STOCK_MONTHS", 3)

	return &Config{
		Server: ServerConfig{
			Addr: viper.GetString("SERVER_ADDR"),
		},
		DB: DatabaseConfig{
			URL: viper.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
		},
		Auth: AuthConfig{
			JWTSecret:       viper.GetString("JWT_SECRET"),
			AccessTokenTTL:  time.Duration(viper.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute,
			RefreshTokenTTL: time.Duration(viper.GetInt("REFRESH_TOKEN_TTL_HOURS")) * time.Hour,
		},
		Stock: StockConfig{
			OldStockMonths: viper.GetInt("OLD_STOCK_MONTHS"),
		},
		SMTP: SMTPConfig{
			Server:       viper.GetString("SMTP_SERVER"),
			Port:         viper.GetString("SMTP_PORT"),
			User:         viper.GetString("SMTP_USER"),
			Password:     viper.GetString("SMTP_PASS"),
			From:         viper.GetString("ALERT_FROM"),
			To:           viper.GetString("ALERT_TO"),
			AuthDisabled: viper.GetBool("SMTP_AUTH_DISABLED"),
		},
	}
}
