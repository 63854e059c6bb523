package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything the server needs at startup.
type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
	SessionSecret      string
	JWTSecret          string
	FrontendURL        string
	Port               string
	Environment        string
	GeminiAPIKey       string
}

// Load reads configs/config.yaml when present; environment variables
// (GOOGLE_CLIENT_ID, JWT_SECRET, ...) always take precedence.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Could not find config.yaml, using environment variables only.")
	}

	viper.SetDefault("port", "5000")
	viper.SetDefault("frontend.url", "http://localhost:3000")
	viper.SetDefault("environment", "development")
	viper.SetDefault("session.secret", "levelup-session-secret")
	viper.SetDefault("jwt.secret", "levelup-jwt-secret")

	cfg := &Config{
		GoogleClientID:     viper.GetString("google.client.id"),
		GoogleClientSecret: viper.GetString("google.client.secret"),
		GoogleCallbackURL:  viper.GetString("google.callback.url"),
		SessionSecret:      viper.GetString("session.secret"),
		JWTSecret:          viper.GetString("jwt.secret"),
		FrontendURL:        viper.GetString("frontend.url"),
		Port:               viper.GetString("port"),
		Environment:        viper.GetString("environment"),
		GeminiAPIKey:       viper.GetString("gemini.api.key"),
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, errors.New("google OAuth credentials are not configured")
	}

	if cfg.GoogleCallbackURL == "" {
		cfg.GoogleCallbackURL = fmt.Sprintf("http://localhost:%s/auth/google/callback", cfg.Port)
	}

	return cfg, nil
}
