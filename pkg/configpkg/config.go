// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress        string        `mapstructure:"SERVER_ADDRESS"`
	DataDir              string        `mapstructure:"DATA_DIR"`
	BaseURL              string        `mapstructure:"BASE_URL"`
	TokenSymmetricKey    string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration  time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	EmailHost            string        `mapstructure:"EMAIL_HOST"`
	EmailPort            int           `mapstructure:"EMAIL_PORT"`
	EmailUser            string        `mapstructure:"EMAIL_USER"`
	EmailPass            string        `mapstructure:"EMAIL_PASS"`
	StripeEndpointSecret string        `mapstructure:"STRIPE_ENDPOINT_SECRET"`
	LoginRateLimit       int64         `mapstructure:"LOGIN_RATE_LIMIT"`
	Environment          string        `mapstructure:"GO_ENV"`
}

// Load reads configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
