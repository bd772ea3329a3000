// Package render formats listing results for the terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"timeturner/internal/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4A90E2")).
			Padding(0, 1)

	weekendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	holidayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F"))

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	totalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))
)

var columnWidths = []int{20, 6, 8, 10, 10, 10, 20}

var columnTitles = []string{"Start", "End", "Type", "Work", "Break", "Over", "Tags"}

// FormatDuration renders a duration as "8h 15m". Negative values get a
// leading minus, zero renders as an empty string.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return sign + strings.Join(parts, " ")
}

func formatRow(cells []string) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		width := columnWidths[i]
		if lipgloss.Width(cell) > width {
			cell = cell[:width]
		}
		padded[i] = cell + strings.Repeat(" ", width-lipgloss.Width(cell))
	}
	return strings.Join(padded, "  ")
}

func clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

// DaySummaryTable renders one row per day plus a totals row.
func DaySummaryTable(days []models.DaySegments) string {
	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Segments"))
	builder.WriteString("\n")
	builder.WriteString(headerStyle.Render(formatRow(columnTitles)))
	builder.WriteString("\n")

	var totalWork, totalBreak, totalOver time.Duration
	for _, day := range days {
		summary := day.Summary
		totalWork += summary.WorkTime
		totalBreak += summary.BreakTime
		totalOver += summary.OverTime

		startCell := fmt.Sprintf("%s %s", day.Weekday.String()[:3], day.Day.Format("2006-01-02"))
		if summary.Start != nil {
			startCell += " " + clock(summary.Start)
		}

		row := formatRow([]string{
			startCell,
			clock(summary.End),
			string(summary.DayType),
			FormatDuration(summary.WorkTime),
			FormatDuration(summary.BreakTime),
			FormatDuration(summary.OverTime),
			strings.Join(day.Tags, ", "),
		})
		switch {
		case summary.DayType == models.DayTypeHoliday:
			row = holidayStyle.Render(row)
		case summary.DayType == models.DayTypeWeekend:
			row = weekendStyle.Render(row)
		case summary.OverTime < 0:
			row = negativeStyle.Render(row)
		}
		builder.WriteString(row)
		builder.WriteString("\n")
	}

	builder.WriteString(totalStyle.Render(formatRow([]string{
		"total:",
		"",
		"",
		FormatDuration(totalWork),
		FormatDuration(totalBreak),
		FormatDuration(totalOver),
		"",
	})))
	builder.WriteString("\n")
	return builder.String()
}

// Segment renders one stored segment for add and end output.
func Segment(segment *models.Segment) string {
	if segment == nil {
		return "No segment found."
	}
	line := fmt.Sprintf("[%d] %s", segment.ID, segment.FormatRange())
	if tags := segment.TagNames(); len(tags) > 0 {
		line += " @" + strings.Join(tags, " @")
	}
	if segment.Description != "" {
		line += "  " + segment.Description
	}
	return line
}
