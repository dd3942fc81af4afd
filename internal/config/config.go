package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	CORS struct {
		AllowedOrigin string `yaml:"allowed_origin"`
	} `yaml:"cors"`
	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// LoadConfig reads configuration from the specified YAML file and applies
// environment overrides. The JWT secret and database URL are mandatory:
// running without them would mean signing tokens with an empty key or
// guessing at a store address, so both are startup errors.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyEnvOverrides(config)

	if config.Auth.JWTSecret == "" {
		return nil, errors.New("jwt secret is not configured (auth.jwt_secret or JWT_SECRET)")
	}
	if config.Database.URL == "" {
		return nil, errors.New("database url is not configured (database.url or DATABASE_URL)")
	}

	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.CORS.AllowedOrigin == "" {
		config.CORS.AllowedOrigin = "http://localhost:3000"
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		config.Server.Port = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		config.Server.Env = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("CLIENT_ORIGIN"); v != "" {
		config.CORS.AllowedOrigin = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		config.Telegram.BotToken = v
		config.Telegram.Enabled = true
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}
}
