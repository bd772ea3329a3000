package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"timeturner/internal/config"
)

func TestDefaultReportSettings(t *testing.T) {
	settings := config.DefaultReportSettings()

	if err := settings.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if settings.HolidayTag != "holiday" || settings.SickTag != "sick" {
		t.Errorf("unexpected tag names: %q / %q", settings.HolidayTag, settings.SickTag)
	}

	holiday := settings.GetTag("holiday")
	vacation := settings.GetTag("vacation")
	sick := settings.GetTag("sick")
	if !(holiday.Priority > sick.Priority && sick.Priority > vacation.Priority) {
		t.Errorf("priority order holiday > sick > vacation violated: %d %d %d",
			holiday.Priority, sick.Priority, vacation.Priority)
	}
	if !vacation.OnlyCoverWorkDays {
		t.Error("vacation must only cover work days")
	}
	if travel := settings.GetTag("travel"); !travel.TrackWorkTimePassive {
		t.Error("travel must track passive work time")
	}
}

func TestGetTagFallback(t *testing.T) {
	settings := config.DefaultReportSettings()

	tag := settings.GetTag("project-x")
	if !tag.TrackWorkTime || !tag.TrackOverTime {
		t.Error("unknown tags must track work and overtime")
	}
	if tag.Priority != 0 || tag.FullDay {
		t.Errorf("unknown tag got non-default settings: %+v", tag)
	}
}

func TestGetHighestPriorityTag(t *testing.T) {
	settings := config.DefaultReportSettings()

	best := settings.GetHighestPriorityTag([]string{"vacation", "holiday", "sick"}, true)
	if best.Name != "holiday" {
		t.Errorf("highest priority tag = %q, want holiday", best.Name)
	}

	// with the full-day filter, plain tags never win
	best = settings.GetHighestPriorityTag([]string{"travel", "vacation"}, true)
	if best.Name != "vacation" {
		t.Errorf("highest full-day tag = %q, want vacation", best.Name)
	}
}

func TestMaxPriority(t *testing.T) {
	settings := config.DefaultReportSettings()

	if got := settings.MaxPriority([]string{"vacation", "sick"}); got != 9 {
		t.Errorf("MaxPriority = %d, want 9", got)
	}
	if got := settings.MaxPriority([]string{"project-x"}); got != 0 {
		t.Errorf("MaxPriority of unknown tag = %d, want 0", got)
	}
}

func TestIsWorkDay(t *testing.T) {
	settings := config.DefaultReportSettings()

	friday := time.Date(1985, time.May, 24, 12, 0, 0, 0, time.Local)
	saturday := time.Date(1985, time.May, 25, 12, 0, 0, 0, time.Local)
	if !settings.IsWorkDay(friday) {
		t.Error("friday must be a work day")
	}
	if settings.IsWorkDay(saturday) {
		t.Error("saturday must not be a work day")
	}
	if got := settings.RequiredWorkTime(friday); got != 8*time.Hour {
		t.Errorf("RequiredWorkTime(friday) = %v", got)
	}
}

func TestTagSettingsValidate(t *testing.T) {
	bad := &config.TagSettings{
		Name:           "confused",
		TrackWorkTime:  true,
		TrackBreakTime: true,
	}
	if err := bad.Validate(); err == nil {
		t.Error("expected validation error for work+break tag")
	}

	alsoBad := &config.TagSettings{
		Name:                 "confused",
		TrackWorkTimePassive: true,
		TrackBreakTime:       true,
	}
	if err := alsoBad.Validate(); err == nil {
		t.Error("expected validation error for passive+break tag")
	}
}

func TestLoadReportSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{
		"holiday_tag": "feiertag",
		"workdays": {"friday": "6h"},
		"tags": [
			{"name": "oncall", "priority": 5, "track_work_time": true, "track_over_time": true}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := config.LoadReportSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if settings.HolidayTag != "feiertag" {
		t.Errorf("HolidayTag = %q", settings.HolidayTag)
	}
	if got := settings.WorktimePerWeekday[time.Friday]; got != 6*time.Hour {
		t.Errorf("friday worktime = %v", got)
	}
	if tag := settings.GetTag("oncall"); tag.Priority != 5 {
		t.Errorf("oncall priority = %d", tag.Priority)
	}
	// defaults survive the merge
	if !settings.GetTag("vacation").FullDay {
		t.Error("vacation default lost after merge")
	}
}

func TestLoadReportSettingsRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{"tags": [{"name": "x", "track_work_time": true, "track_break_time": true}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadReportSettings(path); err == nil {
		t.Error("expected validation error")
	}
}
