package service

import (
	"time"

	"timeturner/internal/models"
	"timeturner/pkg/timeutil"
)

// List walks every calendar day in [start, end), pairing each day's
// segments (midnight-split for reporting) with its computed summary.
// Days without segments are included with an empty summary.
func (s *TrackerService) List(start, end time.Time) ([]models.DaySegments, error) {
	days, err := timeutil.DaysBetween(start, end)
	if err != nil {
		return nil, err
	}

	rows, err := s.segmentRepo.GetOverlapping(start, &end, false)
	if err != nil {
		return nil, err
	}
	split, err := SplitAtMidnight(rows)
	if err != nil {
		return nil, err
	}
	perDay := GroupByDay(split)

	result := make([]models.DaySegments, 0, len(days))
	for _, day := range days {
		segments := perDay[timeutil.DayKey(day)]
		summary, err := s.DailySummary(day, segments)
		if err != nil {
			return nil, err
		}
		result = append(result, models.DaySegments{
			Day:      day,
			Weekday:  day.Weekday(),
			Segments: segments,
			Summary:  summary,
			Tags:     models.CollectTags(segments),
		})
	}
	return result, nil
}
