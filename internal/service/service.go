package service

import (
	"errors"
	"os"
	"time"

	"timeturner/internal/config"
	"timeturner/internal/models"
	"timeturner/internal/repository"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidRange rejects proposed segments whose end does not lie
	// after their start.
	ErrInvalidRange = errors.New("segment end must be after its start")
	// ErrNoOpenSegment is returned by End when nothing is running.
	ErrNoOpenSegment = errors.New("no open segment to end")
	// ErrOpenEndedWorkDaySplit rejects work-days-only tags on
	// open-ended segments; the weekday splitter needs a bounded range.
	ErrOpenEndedWorkDaySplit = errors.New("work-days-only tags require an end time")
)

// TrackerService implements segment reconciliation, daily summaries
// and range listings on top of the segment store.
type TrackerService struct {
	segmentRepo repository.SegmentRepository
	settings    *config.ReportSettings
	logger      *logrus.Logger
	now         func() time.Time
}

func NewTrackerService(
	segmentRepo repository.SegmentRepository,
	settings *config.ReportSettings,
) *TrackerService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if os.Getenv("TIMETURNER_DEBUG") == "" {
		logger.SetLevel(logrus.WarnLevel)
	}

	return &TrackerService{
		segmentRepo: segmentRepo,
		settings:    settings,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *TrackerService) SetClock(now func() time.Time) {
	s.now = now
}

// Settings exposes the active report settings.
func (s *TrackerService) Settings() *config.ReportSettings {
	return s.settings
}

// Segments returns every stored segment ordered by start time.
func (s *TrackerService) Segments() ([]models.Segment, error) {
	return s.segmentRepo.GetAll()
}
