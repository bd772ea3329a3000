package service

import (
	"time"

	"timeturner/internal/models"
	"timeturner/internal/repository"

	"github.com/sirupsen/logrus"
)

// End closes the most recent open segment at the given time and
// returns the updated row.
func (s *TrackerService) End(end time.Time) (*models.Segment, error) {
	latest, err := s.segmentRepo.GetLatest(true)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		s.logger.Warn("No open segment to end")
		return nil, ErrNoOpenSegment
	}
	if !end.After(latest.Start) {
		return nil, ErrInvalidRange
	}

	s.logger.WithFields(logrus.Fields{
		"id":  latest.ID,
		"end": end.Format("2006-01-02 15:04"),
	}).Info("Ending segment")

	endAt := end
	err = s.segmentRepo.Update(latest.ID, repository.SegmentUpdate{
		End: repository.Set(&endAt),
	})
	if err != nil {
		return nil, err
	}
	return s.segmentRepo.GetByID(latest.ID)
}

// Latest returns the most recently started segment, open or closed.
func (s *TrackerService) Latest() (*models.Segment, error) {
	return s.segmentRepo.GetLatest(false)
}
