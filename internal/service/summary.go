package service

import (
	"fmt"
	"time"

	"timeturner/internal/models"
	"timeturner/pkg/timeutil"
)

const (
	// Gaps of at most one minute between segments are folded back into
	// work time instead of counting as breaks.
	miniBreakThreshold = time.Minute

	// Statutory minimum breaks: 45 minutes once work exceeds 6h15m,
	// otherwise 15 minutes once work exceeds 4h.
	longBreakWorkLimit  = 6*time.Hour + 15*time.Minute
	longBreakMinimum    = 45 * time.Minute
	shortBreakWorkLimit = 4 * time.Hour
	shortBreakMinimum   = 15 * time.Minute

	// Passive work only counts until work plus passive time reaches
	// ten hours; anything above is ignored.
	passiveWorkCap = 10 * time.Hour
)

// DailySummary aggregates one day's segments into work, break and
// overtime totals. Segments must be sorted by start time and restricted
// to the given day; the midnight splitter guarantees both for callers
// going through List.
func (s *TrackerService) DailySummary(day time.Time, segments []models.Segment) (models.DailySummary, error) {
	now := s.now()

	var workTime, passiveWorkTime, breakTime time.Duration
	var start, end *time.Time
	byTag := map[string]time.Duration{}

	tags := models.CollectTags(segments)

	trackWorkTime := true
	trackBreakTime := false
	trackOverTime := true
	if len(tags) > 0 {
		// a full-day tag such as vacation overrides what counts as
		// work, break and overtime for the whole day
		highest := s.settings.GetHighestPriorityTag(tags, true)
		if highest.FullDay {
			trackWorkTime = highest.TrackWorkTime
			trackBreakTime = highest.TrackBreakTime
			trackOverTime = highest.TrackOverTime
		}
	}

	for i := range segments {
		segment := &segments[i]

		if !timeutil.SameDay(segment.Start, day) {
			return models.DailySummary{}, fmt.Errorf(
				"segment %d is not on day %s: starts %s",
				segment.ID, timeutil.DayKey(day), timeutil.DayKey(segment.Start))
		}

		if segment.HasTag(s.settings.HolidayTag) {
			// holidays suppress all other accounting for the day
			return models.DailySummary{
				Day:         day,
				DayType:     models.DayTypeHoliday,
				Description: "Holiday",
				ByTag:       map[string]time.Duration{},
			}, nil
		}

		passive := false
		for _, tag := range segment.TagNames() {
			if s.settings.GetTag(tag).TrackWorkTimePassive {
				passive = true
				break
			}
		}

		if start == nil {
			startAt := segment.Start
			start = &startAt
		}

		duration := segment.Duration(now)
		if trackWorkTime {
			if passive {
				passiveWorkTime += duration
			} else {
				workTime += duration
			}
		} else if trackBreakTime {
			breakTime += duration
		}
		for _, tag := range segment.TagNames() {
			byTag[tag] += duration
		}
	}

	if len(segments) > 0 {
		if last := segments[len(segments)-1]; last.End != nil {
			endAt := *last.End
			end = &endAt
		}
	}

	for i := 0; i+1 < len(segments); i++ {
		segment := &segments[i]
		next := &segments[i+1]
		if segment.End == nil {
			return models.DailySummary{}, fmt.Errorf(
				"segment %d has no end time but is followed by another segment", segment.ID)
		}
		gap := next.Start.Sub(*segment.End)
		if gap > miniBreakThreshold {
			breakTime += gap
		} else {
			// short interruptions still count as work
			workTime += gap
		}
	}

	if workTime > longBreakWorkLimit {
		if breakTime < longBreakMinimum {
			missing := longBreakMinimum - breakTime
			workTime -= missing
			breakTime += missing
		}
	} else if workTime > shortBreakWorkLimit {
		if breakTime < shortBreakMinimum {
			missing := shortBreakMinimum - breakTime
			workTime -= missing
			breakTime += missing
		}
	}

	switch {
	case workTime > passiveWorkCap:
		// passive time is ignored entirely
	case workTime+passiveWorkTime > passiveWorkCap:
		workTime = passiveWorkCap
	default:
		workTime += passiveWorkTime
	}

	requiredWorkTime := s.settings.RequiredWorkTime(day)
	dayType := models.DayTypeWork
	if requiredWorkTime == 0 {
		dayType = models.DayTypeWeekend
	}
	if !trackOverTime {
		requiredWorkTime = 0
	}

	overTime := workTime - requiredWorkTime
	if overTime < 0 && containsTag(tags, s.settings.SickTag) {
		// a sick day never shows as owing time
		overTime = 0
	}

	return models.DailySummary{
		Day:       day,
		DayType:   dayType,
		WorkTime:  workTime,
		BreakTime: breakTime,
		OverTime:  overTime,
		Start:     start,
		End:       end,
		ByTag:     byTag,
	}, nil
}

func containsTag(tags []string, name string) bool {
	for _, tag := range tags {
		if tag == name {
			return true
		}
	}
	return false
}
