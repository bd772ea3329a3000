package holidaycal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// CalendarJSON mirrors the holiday calendar file layout:
//
//	{
//	  "year": 2024,
//	  "holidays": [
//	    {"date": "01-01", "name": "Neujahr"},
//	    {"date": "05-01", "name": "Tag der Arbeit"}
//	  ]
//	}
type CalendarJSON struct {
	Year     int           `json:"year"`
	Holidays []HolidayJSON `json:"holidays"`
}

type HolidayJSON struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Holiday is one public holiday resolved to a concrete date.
type Holiday struct {
	Date time.Time
	Name string
}

// ParseCalendarFile reads a holiday calendar and resolves every entry
// to a local-midnight date in the file's year.
func ParseCalendarFile(filePath string) ([]Holiday, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}
	return ParseCalendar(data)
}

// ParseCalendar parses the raw JSON calendar document.
func ParseCalendar(data []byte) ([]Holiday, error) {
	var calendar CalendarJSON
	if err := json.Unmarshal(data, &calendar); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar: %w", err)
	}
	if calendar.Year == 0 {
		return nil, fmt.Errorf("calendar has no year")
	}

	holidays := []Holiday{}
	for _, entry := range calendar.Holidays {
		dayInYear, err := time.ParseInLocation("01-02", entry.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("failed to parse holiday date %q: %w", entry.Date, err)
		}
		date := time.Date(calendar.Year, dayInYear.Month(), dayInYear.Day(), 0, 0, 0, 0, time.Local)
		holidays = append(holidays, Holiday{Date: date, Name: entry.Name})
	}

	return holidays, nil
}

// ForYear filters holidays down to those falling in the given year.
func ForYear(holidays []Holiday, year int) []Holiday {
	result := []Holiday{}
	for _, holiday := range holidays {
		if holiday.Date.Year() == year {
			result = append(result, holiday)
		}
	}
	return result
}

// IsPublicHoliday reports whether the given date appears in the list.
func IsPublicHoliday(holidays []Holiday, date time.Time) bool {
	for _, holiday := range holidays {
		if holiday.Date.Year() == date.Year() &&
			holiday.Date.Month() == date.Month() &&
			holiday.Date.Day() == date.Day() {
			return true
		}
	}
	return false
}
