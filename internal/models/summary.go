package models

import (
	"sort"
	"time"
)

// DayType classifies a calendar day in a summary.
type DayType string

const (
	DayTypeWork     DayType = "work"
	DayTypeWeekend  DayType = "weekend"
	DayTypeHoliday  DayType = "holiday"
	DayTypeVacation DayType = "vacation"
)

// DailySummary is the derived view of one calendar day. It is computed
// fresh on every query and never persisted.
type DailySummary struct {
	Day         time.Time                `json:"day"`
	DayType     DayType                  `json:"day_type"`
	WorkTime    time.Duration            `json:"work_time"`
	BreakTime   time.Duration            `json:"break_time"`
	OverTime    time.Duration            `json:"over_time"`
	Start       *time.Time               `json:"start"`
	End         *time.Time               `json:"end"`
	Description string                   `json:"description"`
	ByTag       map[string]time.Duration `json:"by_tag"`
}

// DaySegments pairs one day's segments with their summary, as produced
// by the listing orchestrator.
type DaySegments struct {
	Day      time.Time    `json:"day"`
	Weekday  time.Weekday `json:"weekday"`
	Segments []Segment    `json:"segments"`
	Summary  DailySummary `json:"summary"`
	Tags     []string     `json:"tags"`
}

// CollectTags returns the sorted set of distinct tag names used by the
// given segments.
func CollectTags(segments []Segment) []string {
	seen := map[string]bool{}
	var tags []string
	for _, segment := range segments {
		for _, tag := range segment.Tags {
			if !seen[tag.Name] {
				seen[tag.Name] = true
				tags = append(tags, tag.Name)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
