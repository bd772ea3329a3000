// Package parser turns free-form command line tokens into concrete
// times and segment parameters.
//
//	| Example         | Meaning                                  |
//	|-----------------|------------------------------------------|
//	|                 | now                                      |
//	| 9:00            | 9:00 today                               |
//	| -1m             | 1 minute ago                             |
//	| -1d@9:00        | yesterday 9:00                           |
//	| 12 7:00         | 7:00 on the 12th of the current month    |
//	| 02-28 9:00      | 9:00 on February 28 of the current year  |
//	| 2022-02-28 9:00 | 9:00 on February 28, 2022                |
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"timeturner/internal/config"
	"timeturner/internal/models"
	"timeturner/pkg/timeutil"
)

// ComponentType classifies a single token.
type ComponentType int

const (
	ComponentTime ComponentType = iota
	ComponentDate
	ComponentDelta
	ComponentDeltaWithTime
)

var deltaComponents = regexp.MustCompile(`([+-])?(\d+)([mhd])`)

// GetComponentType classifies one token. Tokens starting with a sign
// are deltas; a colon marks a time; everything else is a date.
func GetComponentType(component string) ComponentType {
	if strings.HasPrefix(component, "-") || strings.HasPrefix(component, "+") {
		if strings.Contains(component, "@") {
			return ComponentDeltaWithTime
		}
		return ComponentDelta
	}
	if strings.Contains(component, ":") {
		return ComponentTime
	}
	return ComponentDate
}

// ParseTime applies an hour:minute[:second] token to now, keeping the
// date. Seconds are accepted but dropped by SingleTimeParse.
func ParseTime(component string, now time.Time) (time.Time, error) {
	parts := strings.Split(component, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid time %q", component)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", component, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", component, err)
	}
	second := 0
	if len(parts) == 3 {
		second, err = strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q: %w", component, err)
		}
	}
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, now.Location()), nil
}

// ParseDate applies a [[year-]month-]day token to now, keeping the
// time of day.
func ParseDate(component string, now time.Time) (time.Time, error) {
	parts := strings.Split(component, "-")
	numbers := make([]int, len(parts))
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", component, err)
		}
		numbers[i] = value
	}

	year, month, day := now.Year(), now.Month(), now.Day()
	switch len(numbers) {
	case 1:
		day = numbers[0]
	case 2:
		month, day = time.Month(numbers[0]), numbers[1]
	case 3:
		year, month, day = numbers[0], time.Month(numbers[1]), numbers[2]
	default:
		return time.Time{}, fmt.Errorf("invalid date %q", component)
	}
	return time.Date(year, month, day, now.Hour(), now.Minute(), now.Second(), 0, now.Location()), nil
}

// ParseDelta shifts now by a compound offset like "-1d", "+1h15m".
// Days are calendar days; hours and minutes are exact.
func ParseDelta(component string, now time.Time) (time.Time, error) {
	matches := deltaComponents.FindAllStringSubmatch(component, -1)
	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid delta %q", component)
	}
	matched := 0
	for _, match := range matches {
		matched += len(match[0])
	}
	if matched != len(component) {
		return time.Time{}, fmt.Errorf("invalid delta %q", component)
	}

	for _, match := range matches {
		value, err := strconv.Atoi(match[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid delta %q: %w", component, err)
		}
		if match[1] == "-" {
			value = -value
		}
		switch match[3] {
		case "d":
			now = now.AddDate(0, 0, value)
		case "h":
			now = now.Add(time.Duration(value) * time.Hour)
		case "m":
			now = now.Add(time.Duration(value) * time.Minute)
		}
	}
	return now, nil
}

// ParseDeltaWithTime handles tokens like "-1d@9:00": a delta followed
// by an absolute time of day.
func ParseDeltaWithTime(component string, now time.Time) (time.Time, error) {
	delta, timeOfDay, ok := strings.Cut(component, "@")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid delta %q", component)
	}
	shifted, err := ParseDelta(delta, now)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(timeOfDay, shifted)
}

// SingleTimeParse resolves up to two tokens into one point in time
// relative to now. The result always has seconds truncated to zero.
func SingleTimeParse(components []string, now time.Time) (time.Time, error) {
	var err error
	switch len(components) {
	case 0:
		// now
	case 1:
		component := components[0]
		switch GetComponentType(component) {
		case ComponentTime:
			now, err = ParseTime(component, now)
		case ComponentDate:
			now, err = ParseDate(component, now)
		case ComponentDelta:
			now, err = ParseDelta(component, now)
		case ComponentDeltaWithTime:
			now, err = ParseDeltaWithTime(component, now)
		}
	case 2:
		first, second := components[0], components[1]
		firstType, secondType := GetComponentType(first), GetComponentType(second)
		if secondType != ComponentTime || (firstType != ComponentDate && firstType != ComponentDelta) {
			return time.Time{}, fmt.Errorf("invalid components: %v", components)
		}
		if firstType == ComponentDate {
			now, err = ParseDate(first, now)
		} else {
			now, err = ParseDelta(first, now)
		}
		if err != nil {
			return time.Time{}, err
		}
		now, err = ParseTime(second, now)
	default:
		return time.Time{}, fmt.Errorf("invalid components: %v", components)
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, now.Location()), nil
}

// splitRange divides tokens at the first standalone "-" separator.
func splitRange(args []string) (startArgs, endArgs []string) {
	for i, arg := range args {
		if arg == "-" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

// ParseTimeRange resolves tokens into a start and optional end. With
// preferFullDays both ends snap to day boundaries: the start to its
// midnight, the end to the following midnight (defaulting to the end
// of the start's day when absent).
func ParseTimeRange(args []string, now time.Time, preferFullDays bool) (time.Time, *time.Time, error) {
	startArgs, endArgs := splitRange(args)

	start, err := SingleTimeParse(startArgs, now)
	if err != nil {
		return time.Time{}, nil, err
	}

	var end *time.Time
	if len(endArgs) > 0 {
		endAt, err := SingleTimeParse(endArgs, start)
		if err != nil {
			return time.Time{}, nil, err
		}
		end = &endAt
	}

	if preferFullDays {
		start = timeutil.StartOfDay(start)
		if end == nil {
			endAt := timeutil.EndOfDay(start)
			end = &endAt
		} else {
			endAt := timeutil.EndOfDay(*end)
			end = &endAt
		}
	}
	return start, end, nil
}

// ParseAddArgs builds segment parameters from add tokens: "@name"
// tokens become tags, the rest form the time range. Full-day tags
// switch the range to whole days and mark the segment accordingly.
func ParseAddArgs(args []string, now time.Time, holiday bool, settings *config.ReportSettings) (models.NewSegmentParams, error) {
	var timeArgs, tags []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "@") {
			tags = append(tags, strings.TrimPrefix(arg, "@"))
		} else {
			timeArgs = append(timeArgs, arg)
		}
	}
	if holiday {
		tags = append(tags, settings.HolidayTag)
	}

	preferFullDays := settings.HasFullDayTags(tags)
	start, end, err := ParseTimeRange(timeArgs, now, preferFullDays)
	if err != nil {
		return models.NewSegmentParams{}, err
	}

	return models.NewSegmentParams{
		Start:    start,
		End:      end,
		Tags:     tags,
		FullDays: preferFullDays,
	}, nil
}

// ParseListArgs resolves list tokens into a reporting window. The
// keywords "week", "month" and "year" select the current period;
// without arguments the window is today.
func ParseListArgs(args []string, now time.Time) (time.Time, time.Time, error) {
	if len(args) == 1 {
		switch args[0] {
		case "week":
			return timeutil.StartOfWeek(now), timeutil.EndOfWeek(now), nil
		case "month":
			return timeutil.StartOfMonth(now), timeutil.EndOfMonth(now), nil
		case "year":
			return timeutil.StartOfYear(now), timeutil.EndOfYear(now), nil
		}
	}

	start, end, err := ParseTimeRange(args, now, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, *end, nil
}
