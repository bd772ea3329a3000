package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// TagSettings describes how one tag behaves during reconciliation and
// summary computation.
type TagSettings struct {
	Name                 string `json:"name"`
	FullDay              bool   `json:"full_day"`
	Priority             int    `json:"priority"`
	TrackWorkTime        bool   `json:"track_work_time"`
	TrackWorkTimePassive bool   `json:"track_work_time_passive"`
	TrackBreakTime       bool   `json:"track_break_time"`
	TrackOverTime        bool   `json:"track_over_time"`
	OnlyCoverWorkDays    bool   `json:"only_cover_work_days"`
}

// Validate rejects flag combinations that would make summary
// accounting ambiguous.
func (t *TagSettings) Validate() error {
	if t.TrackWorkTime && t.TrackBreakTime {
		return fmt.Errorf("tag %q cannot track both work time and break time", t.Name)
	}
	if t.TrackWorkTimePassive && t.TrackBreakTime {
		return fmt.Errorf("tag %q cannot track both passive work time and break time", t.Name)
	}
	return nil
}

// ReportSettings is the tag policy plus per-weekday required work
// durations. It is loaded once per process and read-only afterwards.
type ReportSettings struct {
	HolidayTag         string
	SickTag            string
	WorktimePerWeekday map[time.Weekday]time.Duration
	TagSettings        map[string]*TagSettings
}

// DefaultReportSettings returns the built-in policy: 8h workdays
// Monday through Friday and the holiday/vacation/sick/travel tags.
func DefaultReportSettings() *ReportSettings {
	return &ReportSettings{
		HolidayTag: "holiday",
		SickTag:    "sick",
		WorktimePerWeekday: map[time.Weekday]time.Duration{
			time.Monday:    8 * time.Hour,
			time.Tuesday:   8 * time.Hour,
			time.Wednesday: 8 * time.Hour,
			time.Thursday:  8 * time.Hour,
			time.Friday:    8 * time.Hour,
			time.Saturday:  0,
			time.Sunday:    0,
		},
		TagSettings: map[string]*TagSettings{
			"holiday": {
				Name:     "holiday",
				FullDay:  true,
				Priority: 10,
			},
			"sick": {
				Name:     "sick",
				FullDay:  true,
				Priority: 9,
			},
			"vacation": {
				Name:              "vacation",
				FullDay:           true,
				Priority:          8,
				OnlyCoverWorkDays: true,
			},
			"travel": {
				Name:                 "travel",
				TrackWorkTime:        true,
				TrackWorkTimePassive: true,
				TrackOverTime:        true,
			},
		},
	}
}

// GetTag looks up a tag's settings, falling back to the generic tag
// (work time and overtime tracked, priority 0) for unknown names.
func (r *ReportSettings) GetTag(name string) *TagSettings {
	if settings, ok := r.TagSettings[name]; ok {
		return settings
	}
	return &TagSettings{
		Name:          name,
		TrackWorkTime: true,
		TrackOverTime: true,
	}
}

// GetHighestPriorityTag returns the settings of the highest-priority
// tag among the given names. With filterFullDay set, only full-day
// tags are considered; when nothing qualifies the generic tag is
// returned.
func (r *ReportSettings) GetHighestPriorityTag(tags []string, filterFullDay bool) *TagSettings {
	var best *TagSettings
	for _, name := range tags {
		settings := r.GetTag(name)
		if filterFullDay && !settings.FullDay {
			continue
		}
		if best == nil || settings.Priority > best.Priority {
			best = settings
		}
	}
	if best == nil {
		return r.GetTag("")
	}
	return best
}

// MaxPriority returns the highest priority among the given tag names,
// 0 when none is configured.
func (r *ReportSettings) MaxPriority(tags []string) int {
	maxPrio := 0
	for _, name := range tags {
		if settings, ok := r.TagSettings[name]; ok && settings.Priority > maxPrio {
			maxPrio = settings.Priority
		}
	}
	return maxPrio
}

// HasFullDayTags reports whether any of the given tags is a full-day
// tag.
func (r *ReportSettings) HasFullDayTags(tags []string) bool {
	for _, name := range tags {
		if r.GetTag(name).FullDay {
			return true
		}
	}
	return false
}

// IsWorkDay reports whether the weekday of t carries a non-zero
// required work duration.
func (r *ReportSettings) IsWorkDay(t time.Time) bool {
	return r.WorktimePerWeekday[t.Weekday()] > 0
}

// RequiredWorkTime returns the required work duration for the weekday
// of t.
func (r *ReportSettings) RequiredWorkTime(t time.Time) time.Duration {
	return r.WorktimePerWeekday[t.Weekday()]
}

// Validate checks every configured tag.
func (r *ReportSettings) Validate() error {
	for _, settings := range r.TagSettings {
		if err := settings.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// settingsFile is the JSON shape of an on-disk policy override.
type settingsFile struct {
	HolidayTag string            `json:"holiday_tag"`
	SickTag    string            `json:"sick_tag"`
	Workdays   map[string]string `json:"workdays"`
	Tags       []TagSettings     `json:"tags"`
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// LoadReportSettings merges a JSON settings file into the defaults.
// An empty path returns the defaults unchanged.
func LoadReportSettings(path string) (*ReportSettings, error) {
	settings := DefaultReportSettings()
	if path == "" {
		return settings, settings.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	var file settingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}

	if file.HolidayTag != "" {
		settings.HolidayTag = file.HolidayTag
	}
	if file.SickTag != "" {
		settings.SickTag = file.SickTag
	}
	for name, value := range file.Workdays {
		weekday, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in settings file", name)
		}
		duration, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid duration for %s: %w", name, err)
		}
		settings.WorktimePerWeekday[weekday] = duration
	}
	for i := range file.Tags {
		tag := file.Tags[i]
		if tag.Name == "" {
			return nil, fmt.Errorf("settings file contains a tag without a name")
		}
		settings.TagSettings[tag.Name] = &tag
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	logrus.WithField("path", path).Info("Loaded report settings overrides")
	return settings, nil
}
