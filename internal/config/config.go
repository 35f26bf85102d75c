package config

import (
	"log"
	"time"

	"github.com/spf13/viper"

	"github.com/contestlet/contestlet/internal/models"
)

type Config struct {
	DBUrl      string `mapstructure:"DB_URL"`
	RedisURL   string `mapstructure:"REDIS_URL"` // empty = in-memory stores
	JWTSecret  string `mapstructure:"JWT_SECRET"`
	AdminToken string `mapstructure:"ADMIN_TOKEN"`
	Port       string `mapstructure:"PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	OTPExpiryMinutes     int     `mapstructure:"OTP_EXPIRY_MINUTES"`
	OTPMaxAttempts       int     `mapstructure:"OTP_MAX_ATTEMPTS"`
	OTPRateLimit         int     `mapstructure:"OTP_RATE_LIMIT"`
	OTPRateWindowMinutes int     `mapstructure:"OTP_RATE_WINDOW_MINUTES"`
	DefaultRadiusMiles   float64 `mapstructure:"DEFAULT_RADIUS_MILES"`
}

func LoadConfig() Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("OTP_EXPIRY_MINUTES", models.OTPExpiryMinutes)
	viper.SetDefault("OTP_MAX_ATTEMPTS", models.OTPMaxAttempts)
	viper.SetDefault("OTP_RATE_LIMIT", models.OTPRateLimit)
	viper.SetDefault("OTP_RATE_WINDOW_MINUTES", models.OTPRateWindowMinutes)
	viper.SetDefault("DEFAULT_RADIUS_MILES", 25.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, using env variables only")
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatal("config unmarshal error:", err)
	}

	return c
}

func (c Config) OTPExpiry() time.Duration {
	return time.Duration(c.OTPExpiryMinutes) * time.Minute
}

func (c Config) OTPRateWindow() time.Duration {
	return time.Duration(c.OTPRateWindowMinutes) * time.Minute
}
