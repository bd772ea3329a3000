package service

import (
	"timeturner/internal/models"
	"timeturner/pkg/timeutil"
)

// SplitAtMidnight decomposes segments spanning multiple calendar days
// into one piece per day. This is a reporting view: all pieces keep
// the original segment's ID, tags and flags, and nothing is persisted.
func SplitAtMidnight(segments []models.Segment) ([]models.Segment, error) {
	var result []models.Segment
	for _, segment := range segments {
		if segment.End == nil || timeutil.SameDay(segment.Start, *segment.End) {
			result = append(result, segment)
			continue
		}

		first := segment
		firstEnd := timeutil.EndOfDay(segment.Start)
		first.End = &firstEnd
		result = append(result, first)

		days, err := timeutil.DaysBetween(firstEnd, *segment.End)
		if err != nil {
			return nil, err
		}
		for _, day := range days {
			piece := segment
			piece.Start = day
			if timeutil.SameDay(day, *segment.End) {
				pieceEnd := *segment.End
				piece.End = &pieceEnd
			} else {
				pieceEnd := timeutil.EndOfDay(day)
				piece.End = &pieceEnd
			}
			result = append(result, piece)
		}
	}
	return result, nil
}

// GroupByDay buckets segments by the calendar date of their start.
func GroupByDay(segments []models.Segment) map[string][]models.Segment {
	groups := map[string][]models.Segment{}
	for _, segment := range segments {
		key := timeutil.DayKey(segment.Start)
		groups[key] = append(groups[key], segment)
	}
	return groups
}

// splitPerWeekday trims a proposed range down to the work-day spans it
// touches, yielding one sub-range per contiguous run of work days.
// Ranges entirely on non-work days yield nothing.
func (s *TrackerService) splitPerWeekday(params models.NewSegmentParams) ([]models.NewSegmentParams, error) {
	if params.End == nil {
		return nil, ErrOpenEndedWorkDaySplit
	}

	days, err := timeutil.DaysBetween(params.Start, *params.End)
	if err != nil {
		return nil, err
	}

	var result []models.NewSegmentParams
	start := params.Start
	onWorkDays := s.settings.IsWorkDay(start)
	for _, day := range days {
		if onWorkDays {
			if !s.settings.IsWorkDay(day) {
				end := day
				result = append(result, params.WithRange(start, &end))
				onWorkDays = false
			}
		} else {
			if s.settings.IsWorkDay(day) {
				start = day
				onWorkDays = true
			}
		}
	}
	if onWorkDays {
		end := *params.End
		result = append(result, params.WithRange(start, &end))
	}

	return result, nil
}
