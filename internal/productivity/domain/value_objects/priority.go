package value_objects

import (
	"errors"
	"fmt"
	"strings"
)

// Priority represents task importance. The zero value is not a valid priority.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

var (
	ErrInvalidPriority = errors.New("invalid priority value")
)

var priorityNames = map[Priority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
	PriorityUrgent: "urgent",
}

var priorityValues = map[string]Priority{
	"low":    PriorityLow,
	"medium": PriorityMedium,
	"high":   PriorityHigh,
	"urgent": PriorityUrgent,
}

// ParsePriority creates a Priority from a string.
func ParsePriority(s string) (Priority, error) {
	p, ok := priorityValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (expected low, medium, high or urgent)", ErrInvalidPriority, s)
	}
	return p, nil
}

// MustParsePriority parses a priority or panics.
func MustParsePriority(s string) Priority {
	p, err := ParsePriority(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the priority is a valid value.
func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// Weight returns the numeric weight used in scoring (low=1 .. urgent=4).
func (p Priority) Weight() int {
	if !p.IsValid() {
		return 0
	}
	return int(p)
}

// IsHighOrAbove reports whether the priority is high or urgent.
func (p Priority) IsHighOrAbove() bool {
	return p == PriorityHigh || p == PriorityUrgent
}
