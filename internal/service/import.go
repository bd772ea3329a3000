package service

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"timeturner/internal/models"
)

const importTableSeparator = "--------------------------------------------------------------------------------"

var importTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ImportText reads a hamster-style activity export and stores every
// entry as-is. Imported segments bypass reconciliation: the export is
// assumed to be a consistent, non-overlapping history.
func (s *TrackerService) ImportText(filePath string) ([]models.Segment, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	table, err := tableBody(lines)
	if err != nil {
		return nil, err
	}

	entries, err := extractEntries(table)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("count", len(entries)).Info("Importing text export")

	var imported []models.Segment
	for _, params := range entries {
		segment := params.Segment()
		if err := s.segmentRepo.Create(segment); err != nil {
			return nil, err
		}
		imported = append(imported, *segment)
	}
	return imported, nil
}

// tableBody cuts the export down to the lines between the first and
// second separator rows, dropping header and footer.
func tableBody(lines []string) ([]string, error) {
	first := -1
	for i, line := range lines {
		if strings.TrimRight(line, "\r\n") == importTableSeparator {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("could not find table separator")
	}
	body := lines[first+1:]
	for i, line := range body {
		if strings.TrimRight(line, "\r\n") == importTableSeparator {
			return body[:i], nil
		}
	}
	return nil, fmt.Errorf("could not find closing table separator")
}

// extractEntries parses the pipe-separated table rows. A row starting
// with a digit opens a new entry; a row starting with "#" lists its
// tags; any other row continues the entry's description.
func extractEntries(lines []string) ([]models.NewSegmentParams, error) {
	var entries []models.NewSegmentParams
	var current *models.NewSegmentParams

	for _, rawLine := range lines {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		switch {
		case line[0] >= '0' && line[0] <= '9':
			if current != nil {
				entries = append(entries, *current)
			}
		case line[0] == '#':
			if current == nil {
				return nil, fmt.Errorf("tag line without entry: %q", line)
			}
			var tags []string
			for _, tag := range strings.Split(line, ",") {
				tag = strings.TrimSpace(tag)
				tag = strings.TrimPrefix(tag, "#")
				if tag != "" {
					tags = append(tags, tag)
				}
			}
			current.Tags = tags
			continue
		default:
			if current == nil {
				return nil, fmt.Errorf("continuation without entry: %q", line)
			}
			if current.Description == "" {
				current.Description = line
			} else {
				current.Description += "\n" + line
			}
			continue
		}

		columns := strings.Split(line, "|")
		if len(columns) < 5 {
			return nil, fmt.Errorf("malformed table row: %q", line)
		}
		for i := range columns {
			columns[i] = strings.TrimSpace(columns[i])
		}

		start, err := parseImportTime(columns[0])
		if err != nil {
			return nil, err
		}
		var end *time.Time
		if columns[1] != "" {
			endAt, err := parseImportTime(columns[1])
			if err != nil {
				return nil, err
			}
			end = &endAt
		}
		// columns[2] holds the duration, which we recompute anyway
		activity := columns[3]
		category := columns[4]

		current = &models.NewSegmentParams{
			Start:       start,
			End:         end,
			Passive:     category == "travel",
			Description: fmt.Sprintf("%s@%s", category, activity),
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}

	return entries, nil
}

func parseImportTime(value string) (time.Time, error) {
	for _, layout := range importTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse time %q", value)
}

type jsonImportEntry struct {
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end"`
	Passive     bool       `json:"passive"`
	Tags        []string   `json:"tags"`
	Description string     `json:"description"`
}

// ImportJSON stores segments from a JSON array export, bypassing
// reconciliation like ImportText.
func (s *TrackerService) ImportJSON(filePath string) ([]models.Segment, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var entries []jsonImportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal export: %w", err)
	}

	s.logger.WithField("count", len(entries)).Info("Importing JSON export")

	var imported []models.Segment
	for _, entry := range entries {
		segment := (&models.NewSegmentParams{
			Start:       entry.Start,
			End:         entry.End,
			Passive:     entry.Passive,
			Tags:        entry.Tags,
			Description: entry.Description,
		}).Segment()
		if err := s.segmentRepo.Create(segment); err != nil {
			return nil, err
		}
		imported = append(imported, *segment)
	}
	return imported, nil
}
