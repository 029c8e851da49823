package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultDatabaseURL        = "file:teamtime?mode=memory&cache=shared"
	defaultSessionDatabaseURL = "teamtime_session.db"
)

type BotConfig struct {
	TelegramToken      string
	DatabaseURL        string
	SessionDatabaseURL string
	SeedFile           string
	Timezone           string
	HTTPAddr           string
	LogLevel           string
	BotDebug           bool
}

var instance *BotConfig
var once sync.Once

// GetBotConfig loads the configuration once and exits on invalid settings.
func GetBotConfig() *BotConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Infof("No .env file loaded: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("invalid configuration: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load reads the configuration from the environment.
func Load() (*BotConfig, error) {
	cfg := &BotConfig{
		TelegramToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		DatabaseURL:        getEnv("DATABASE_URL", defaultDatabaseURL),
		SessionDatabaseURL: getEnv("SESSION_DATABASE_URL", defaultSessionDatabaseURL),
		SeedFile:           getEnv("SEED_FILE", ""),
		Timezone:           getEnv("TIMEZONE", ""),
		HTTPAddr:           getEnv("HTTP_ADDR", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		BotDebug:           getEnvAsBool("BOT_DEBUG", false),
	}

	if cfg.TelegramToken == "" && cfg.HTTPAddr == "" {
		return nil, errors.New("set TELEGRAM_BOT_TOKEN, HTTP_ADDR or both")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Location resolves TIMEZONE; an empty value means the host's local zone.
func (c *BotConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *BotConfig) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}
