package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"timeturner/internal/config"
	"timeturner/internal/models"
	"timeturner/internal/parser"
	"timeturner/internal/repository"
	"timeturner/internal/service"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// The fixed clock used throughout: Saturday, May 25th 1985, 15:34.
var testNow = time.Date(1985, time.May, 25, 15, 34, 0, 0, time.Local)

func newTestService(t *testing.T) *service.TrackerService {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}

	repo, err := repository.NewGormSegmentRepository(db)
	if err != nil {
		t.Fatalf("creating repository: %v", err)
	}

	svc := service.NewTrackerService(repo, config.DefaultReportSettings())
	svc.SetClock(func() time.Time { return testNow })
	return svc
}

// addTokens runs an add the way the CLI does, through the token parser.
func addTokens(t *testing.T, svc *service.TrackerService, tokens []string) {
	t.Helper()
	params, err := parser.ParseAddArgs(tokens, testNow, false, svc.Settings())
	if err != nil {
		t.Fatalf("parsing add tokens %v: %v", tokens, err)
	}
	if _, err := svc.Add(params); err != nil {
		t.Fatalf("adding %v: %v", tokens, err)
	}
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func segment(start time.Time, end *time.Time, tags ...string) models.Segment {
	s := models.Segment{Start: start, End: end}
	for _, tag := range tags {
		s.Tags = append(s.Tags, models.Tag{Name: tag})
	}
	return s
}
