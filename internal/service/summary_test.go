package service_test

import (
	"testing"
	"time"

	"timeturner/internal/models"
)

func TestDailySummary(t *testing.T) {
	saturday := at(1985, time.May, 25, 0, 0)
	monday := at(1985, time.May, 27, 0, 0)

	hm := func(hours, minutes int) time.Duration {
		return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	}

	tests := []struct {
		name     string
		day      time.Time
		segments []models.Segment
		want     models.DailySummary
	}{
		{
			name: "no segments on a weekend",
			day:  saturday,
			want: models.DailySummary{DayType: models.DayTypeWeekend},
		},
		{
			name: "one short segment",
			day:  saturday,
			segments: []models.Segment{
				segment(at(1985, time.May, 25, 0, 0), ptr(at(1985, time.May, 25, 1, 0))),
			},
			want: models.DailySummary{
				DayType:  models.DayTypeWeekend,
				WorkTime: hm(1, 0),
				OverTime: hm(1, 0),
			},
		},
		{
			name: "two adjacent segments",
			day:  saturday,
			segments: []models.Segment{
				segment(at(1985, time.May, 25, 0, 0), ptr(at(1985, time.May, 25, 1, 0))),
				segment(at(1985, time.May, 25, 1, 0), ptr(at(1985, time.May, 25, 2, 0))),
			},
			want: models.DailySummary{
				DayType:  models.DayTypeWeekend,
				WorkTime: hm(2, 0),
				OverTime: hm(2, 0),
			},
		},
		{
			name: "mini gap counts as work",
			day:  saturday,
			segments: []models.Segment{
				segment(at(1985, time.May, 25, 0, 0), ptr(at(1985, time.May, 25, 0, 59))),
				segment(at(1985, time.May, 25, 1, 0), ptr(at(1985, time.May, 25, 2, 0))),
			},
			want: models.DailySummary{
				DayType:  models.DayTypeWeekend,
				WorkTime: hm(2, 0),
				OverTime: hm(2, 0),
			},
		},
		{
			name: "gap over a minute is a break",
			day:  saturday,
			segments: []models.Segment{
				segment(at(1985, time.May, 25, 0, 0), ptr(at(1985, time.May, 25, 0, 59))),
				segment(at(1985, time.May, 25, 2, 0), ptr(at(1985, time.May, 25, 3, 0))),
			},
			want: models.DailySummary{
				DayType:   models.DayTypeWeekend,
				WorkTime:  hm(1, 59),
				BreakTime: hm(1, 1),
				OverTime:  hm(1, 59),
			},
		},
		{
			name: "long enough break is kept as is",
			day:  saturday,
			segments: []models.Segment{
				segment(at(1985, time.May, 25, 0, 0), ptr(at(1985, time.May, 25, 1, 0))),
				segment(at(1985, time.May, 25, 2, 0), ptr(at(1985, time.May, 25, 9, 0))),
			},
			want: models.DailySummary{
				DayType:   models.DayTypeWeekend,
				WorkTime:  hm(8, 0),
				BreakTime: hm(1, 0),
				OverTime:  hm(8, 0),
			},
		},
		{
			name: "statutory long break is deducted",
			day:  saturday,
			segments: []models.Segment{
				segment(at(1985, time.May, 25, 0, 0), ptr(at(1985, time.May, 25, 9, 0))),
			},
			want: models.DailySummary{
				DayType:   models.DayTypeWeekend,
				WorkTime:  hm(8, 15),
				BreakTime: hm(0, 45),
				OverTime:  hm(8, 15),
			},
		},
		{
			name: "statutory short break is deducted",
			day:  saturday,
			segments: []models.Segment{
				segment(at(1985, time.May, 25, 0, 0), ptr(at(1985, time.May, 25, 5, 0))),
			},
			want: models.DailySummary{
				DayType:   models.DayTypeWeekend,
				WorkTime:  hm(4, 45),
				BreakTime: hm(0, 15),
				OverTime:  hm(4, 45),
			},
		},
		{
			name: "real break satisfies the statutory minimum",
			day:  saturday,
			segments: []models.Segment{
				segment(at(1985, time.May, 25, 0, 0), ptr(at(1985, time.May, 25, 2, 0))),
				segment(at(1985, time.May, 25, 2, 30), ptr(at(1985, time.May, 25, 5, 0))),
			},
			want: models.DailySummary{
				DayType:   models.DayTypeWeekend,
				WorkTime:  hm(4, 30),
				BreakTime: hm(0, 30),
				OverTime:  hm(4, 30),
			},
		},
		{
			name: "sick day produces no negative overtime",
			day:  monday,
			segments: []models.Segment{
				segment(monday, ptr(at(1985, time.May, 28, 0, 0)), "sick"),
			},
			want: models.DailySummary{
				DayType: models.DayTypeWork,
			},
		},
		{
			name: "one hour travel",
			day:  monday,
			segments: []models.Segment{
				segment(at(1985, time.May, 27, 9, 0), ptr(at(1985, time.May, 27, 10, 0)), "travel"),
			},
			want: models.DailySummary{
				DayType:  models.DayTypeWork,
				WorkTime: hm(1, 0),
				OverTime: -hm(7, 0),
			},
		},
		{
			name: "one hour travel and three hours work",
			day:  monday,
			segments: []models.Segment{
				segment(at(1985, time.May, 27, 9, 0), ptr(at(1985, time.May, 27, 10, 0)), "travel"),
				segment(at(1985, time.May, 27, 12, 0), ptr(at(1985, time.May, 27, 15, 0))),
			},
			want: models.DailySummary{
				DayType:   models.DayTypeWork,
				WorkTime:  hm(4, 0),
				BreakTime: hm(2, 0),
				OverTime:  -hm(4, 0),
			},
		},
		{
			name: "passive time is capped at ten hours",
			day:  monday,
			segments: []models.Segment{
				segment(monday, ptr(at(1985, time.May, 27, 10, 0)), "travel"),
				segment(at(1985, time.May, 27, 12, 0), ptr(at(1985, time.May, 27, 15, 0))),
			},
			want: models.DailySummary{
				DayType:   models.DayTypeWork,
				WorkTime:  hm(10, 0),
				BreakTime: hm(2, 0),
				OverTime:  hm(2, 0),
			},
		},
		{
			name: "active work above the cap ignores passive time",
			day:  monday,
			segments: []models.Segment{
				segment(monday, ptr(at(1985, time.May, 27, 4, 0)), "travel"),
				segment(at(1985, time.May, 27, 12, 0), ptr(at(1985, time.May, 27, 23, 0))),
			},
			want: models.DailySummary{
				DayType:   models.DayTypeWork,
				WorkTime:  hm(11, 0),
				BreakTime: hm(8, 0),
				OverTime:  hm(3, 0),
			},
		},
		{
			name: "holiday suppresses all accounting",
			day:  monday,
			segments: []models.Segment{
				segment(monday, ptr(at(1985, time.May, 28, 0, 0)), "holiday"),
			},
			want: models.DailySummary{
				DayType:     models.DayTypeHoliday,
				Description: "Holiday",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)

			got, err := svc.DailySummary(tt.day, tt.segments)
			if err != nil {
				t.Fatal(err)
			}
			if got.DayType != tt.want.DayType {
				t.Errorf("DayType = %v, want %v", got.DayType, tt.want.DayType)
			}
			if got.WorkTime != tt.want.WorkTime {
				t.Errorf("WorkTime = %v, want %v", got.WorkTime, tt.want.WorkTime)
			}
			if got.BreakTime != tt.want.BreakTime {
				t.Errorf("BreakTime = %v, want %v", got.BreakTime, tt.want.BreakTime)
			}
			if got.OverTime != tt.want.OverTime {
				t.Errorf("OverTime = %v, want %v", got.OverTime, tt.want.OverTime)
			}
			if got.Description != tt.want.Description {
				t.Errorf("Description = %q, want %q", got.Description, tt.want.Description)
			}
		})
	}
}

func TestDailySummaryByTag(t *testing.T) {
	svc := newTestService(t)
	saturday := at(1985, time.May, 25, 0, 0)

	segments := []models.Segment{
		segment(saturday, ptr(at(1985, time.May, 25, 2, 0)), "A", "B"),
		segment(at(1985, time.May, 25, 2, 30), ptr(at(1985, time.May, 25, 5, 0)), "B", "C"),
	}

	got, err := svc.DailySummary(saturday, segments)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]time.Duration{
		"A": 2 * time.Hour,
		"B": 4*time.Hour + 30*time.Minute,
		"C": 2*time.Hour + 30*time.Minute,
	}
	for tag, duration := range want {
		if got.ByTag[tag] != duration {
			t.Errorf("ByTag[%q] = %v, want %v", tag, got.ByTag[tag], duration)
		}
	}
}

func TestDailySummaryErrors(t *testing.T) {
	svc := newTestService(t)
	saturday := at(1985, time.May, 25, 0, 0)

	// open segment followed by another
	_, err := svc.DailySummary(saturday, []models.Segment{
		segment(saturday, nil),
		segment(at(1985, time.May, 25, 1, 0), ptr(at(1985, time.May, 25, 2, 0))),
	})
	if err == nil {
		t.Error("expected error for open segment followed by another")
	}

	// segment on the wrong day
	_, err = svc.DailySummary(saturday, []models.Segment{
		segment(at(1985, time.May, 26, 1, 0), ptr(at(1985, time.May, 26, 2, 0))),
	})
	if err == nil {
		t.Error("expected error for segment on another day")
	}
}
