package repository

import (
	"time"
)

// Field is a three-state update value: unset fields are left
// unchanged, set fields are written even when the value is a zero
// value or nil. This replaces the usual "sentinel default" trick for
// sparse updates.
type Field[T any] struct {
	set   bool
	value T
}

// Set wraps a value into a set Field.
func Set[T any](value T) Field[T] {
	return Field[T]{set: true, value: value}
}

// IsSet reports whether the field carries a value.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Value returns the wrapped value; only meaningful when IsSet.
func (f Field[T]) Value() T {
	return f.value
}

// SegmentUpdate is a sparse update applied to a stored segment. The
// zero value changes nothing.
type SegmentUpdate struct {
	Start       Field[time.Time]
	End         Field[*time.Time]
	Passive     Field[bool]
	FullDays    Field[bool]
	Tags        Field[[]string]
	Description Field[string]
}

// columns renders the scalar part of the update as a gorm update map.
func (u SegmentUpdate) columns() map[string]any {
	changes := map[string]any{}
	if u.Start.IsSet() {
		changes["start_time"] = u.Start.Value()
	}
	if u.End.IsSet() {
		changes["end_time"] = u.End.Value()
	}
	if u.Passive.IsSet() {
		changes["passive"] = u.Passive.Value()
	}
	if u.FullDays.IsSet() {
		changes["full_days"] = u.FullDays.Value()
	}
	if u.Description.IsSet() {
		changes["description"] = u.Description.Value()
	}
	return changes
}
