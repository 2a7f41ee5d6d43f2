package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string  `mapstructure:"SERVER_PORT"`
	DatabaseURL     string  `mapstructure:"DATABASE_URL"`
	RedisAddr       string  `mapstructure:"REDIS_ADDR"`
	JWTSecret       string  `mapstructure:"JWT_SECRET"`
	OpsPasswordHash string  `mapstructure:"OPS_PASSWORD_HASH"`
	ClientOrigin    string  `mapstructure:"CLIENT_ORIGIN"`
	AWSRegion       string  `mapstructure:"AWS_REGION"`
	SenderEmail     string  `mapstructure:"SENDER_EMAIL"`
	SenderName      string  `mapstructure:"SENDER_NAME"`
	AdminEmail      string  `mapstructure:"ADMIN_EMAIL"`
	PaymentMaxCHF   float64 `mapstructure:"PAYMENT_MAX_CHF"`
	StripeAPIKey    string
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("SENDER_NAME", "Elite Limo")
	viper.SetDefault("PAYMENT_MAX_CHF", 15000)

	viper.AutomaticEnv() // Read in environment variables that match

	err := viper.ReadInConfig()
	if err != nil {
		// Allow a missing .env; everything can come from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No .env file found.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	cfg.StripeAPIKey = os.Getenv("STRIPE_API_KEY")

	return &cfg, nil
}
