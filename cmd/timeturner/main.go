package main

import (
	"fmt"
	"os"
	"path/filepath"

	"timeturner/internal/cli"
	"timeturner/internal/config"
	"timeturner/internal/repository"
	"timeturner/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if os.Getenv("TIMETURNER_DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	cfg := config.GetConfig()

	settings, err := config.LoadReportSettings(cfg.SettingsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load report settings")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.WithError(err).Fatal("Failed to get database instance")
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logger.WithError(err).Warn("Failed to enable foreign keys")
	}

	segmentRepo, err := repository.NewGormSegmentRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create segment repository")
	}

	tracker := service.NewTrackerService(segmentRepo, settings)

	if err := cli.New(tracker, logger).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := sqlDB.Close(); err != nil {
		logger.WithError(err).Warn("Error closing database")
	}
}
