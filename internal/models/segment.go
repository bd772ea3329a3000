package models

import (
	"fmt"
	"time"
)

// Segment is a stored time interval. An open segment (End == nil) is
// still running, e.g. clocked in but not yet out.
type Segment struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Start       time.Time  `gorm:"column:start_time;not null;index" json:"start"`
	End         *time.Time `gorm:"column:end_time;index" json:"end"`
	Passive     bool       `gorm:"not null;default:false" json:"passive"`
	FullDays    bool       `gorm:"not null;default:false" json:"full_days"`
	Description string     `json:"description"`
	Tags        []Tag      `gorm:"many2many:segment_tags" json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Segment) TableName() string {
	return "segments"
}

// IsOpen reports whether the segment has no end time yet.
func (s *Segment) IsOpen() bool {
	return s.End == nil
}

// Duration returns the segment length. Open segments are measured up
// to now.
func (s *Segment) Duration(now time.Time) time.Duration {
	if s.End == nil {
		return now.Sub(s.Start)
	}
	return s.End.Sub(s.Start)
}

// TagNames returns the segment's tag names in stored order.
func (s *Segment) TagNames() []string {
	names := make([]string, 0, len(s.Tags))
	for _, tag := range s.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// HasTag reports whether the segment carries the named tag.
func (s *Segment) HasTag(name string) bool {
	for _, tag := range s.Tags {
		if tag.Name == name {
			return true
		}
	}
	return false
}

// FormatRange renders the segment interval for log output.
func (s *Segment) FormatRange() string {
	if s.End == nil {
		return fmt.Sprintf("%s - open", s.Start.Format("2006-01-02 15:04"))
	}
	return fmt.Sprintf("%s - %s",
		s.Start.Format("2006-01-02 15:04"),
		s.End.Format("2006-01-02 15:04"))
}

// IsValid checks basic invariants before persisting.
func (s *Segment) IsValid() bool {
	if s.Start.IsZero() {
		return false
	}
	if s.End != nil && !s.End.After(s.Start) {
		return false
	}
	return true
}
