package service

import (
	"timeturner/internal/models"
	"timeturner/internal/repository"
	"timeturner/pkg/holidaycal"
	"timeturner/pkg/timeutil"

	"github.com/sirupsen/logrus"
)

// ImportHolidays loads a holiday calendar file and records every
// holiday of the given year as a full-day segment. Holidays already in
// the store are skipped; an existing entry without a description gets
// the calendar name filled in. New entries go through reconciliation
// so they win against lower-priority full-day segments like vacation.
func (s *TrackerService) ImportHolidays(year int, calendarPath string) ([]models.Segment, error) {
	holidays, err := holidaycal.ParseCalendarFile(calendarPath)
	if err != nil {
		return nil, err
	}
	holidays = holidaycal.ForYear(holidays, year)

	s.logger.WithFields(logrus.Fields{
		"year":  year,
		"count": len(holidays),
	}).Info("Importing holidays")

	var added []models.Segment
	for _, holiday := range holidays {
		existing, err := s.segmentRepo.GetFullDayByDate(holiday.Date)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.HasTag(s.settings.HolidayTag) {
			if existing.Description == holiday.Name {
				continue
			}
			if existing.Description == "" {
				err := s.segmentRepo.Update(existing.ID, repository.SegmentUpdate{
					Description: repository.Set(holiday.Name),
				})
				if err != nil {
					return nil, err
				}
				updated, err := s.segmentRepo.GetByID(existing.ID)
				if err != nil {
					return nil, err
				}
				added = append(added, *updated)
				continue
			}
		}

		end := timeutil.EndOfDay(holiday.Date)
		segments, err := s.Add(models.NewSegmentParams{
			Start:       timeutil.StartOfDay(holiday.Date),
			End:         &end,
			Tags:        []string{s.settings.HolidayTag},
			Description: holiday.Name,
			FullDays:    true,
		})
		if err != nil {
			return nil, err
		}
		added = append(added, segments...)
	}
	return added, nil
}
