package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds process-level settings resolved from the environment.
type Config struct {
	DatabasePath string
	SettingsPath string
}

var instance *Config
var once sync.Once

// GetConfig loads the configuration once per process. A .env file is
// honored when present; environment variables win over defaults.
func GetConfig() *Config {
	once.Do(func() {
		instance = &Config{}

		if err := godotenv.Load(); err == nil {
			logrus.Debug("loaded settings from .env file")
		}

		instance.DatabasePath = getEnv("TIMETURNER_DB", defaultDatabasePath())
		instance.SettingsPath = getEnv("TIMETURNER_SETTINGS", "")
	})

	return instance
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		logrus.WithError(err).Fatal("could not determine home directory")
	}
	return filepath.Join(home, ".config", "timeturner", "timeturner.db")
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}
