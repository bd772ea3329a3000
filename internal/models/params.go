package models

import "time"

// NewSegmentParams is a proposed segment before reconciliation. The
// engine may narrow its range or split it into sub-ranges before
// anything is persisted.
type NewSegmentParams struct {
	Start       time.Time
	End         *time.Time
	Tags        []string
	Description string
	Passive     bool
	FullDays    bool
}

// WithRange copies the params onto a different time range, as used by
// the weekday and conflict splitters.
func (p NewSegmentParams) WithRange(start time.Time, end *time.Time) NewSegmentParams {
	p.Start = start
	p.End = end
	return p
}

// Segment converts the params into an unsaved Segment row.
func (p NewSegmentParams) Segment() *Segment {
	tags := make([]Tag, 0, len(p.Tags))
	for _, name := range p.Tags {
		tags = append(tags, Tag{Name: name})
	}
	return &Segment{
		Start:       p.Start,
		End:         p.End,
		Passive:     p.Passive,
		FullDays:    p.FullDays,
		Description: p.Description,
		Tags:        tags,
	}
}
