package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	ServerAddr     string `mapstructure:"SERVER_ADDR"`
	PageSize       int    `mapstructure:"PAGE_SIZE"`
	MaxPageSize    int    `mapstructure:"MAX_PAGE_SIZE"`
	ThrottleLimit  int    `mapstructure:"THROTTLE_LIMIT"`
	ThrottleWindow int    `mapstructure:"THROTTLE_WINDOW_SECONDS"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("PAGE_SIZE", 10)
	viper.SetDefault("MAX_PAGE_SIZE", 100)
	viper.SetDefault("THROTTLE_LIMIT", 3)
	viper.SetDefault("THROTTLE_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
