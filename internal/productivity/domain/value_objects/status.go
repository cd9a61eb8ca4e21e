package value_objects

import (
	"errors"
	"fmt"
	"strings"
)

// Status represents the task lifecycle state.
type Status int

const (
	StatusPending Status = iota + 1
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

var ErrInvalidStatus = errors.New("invalid status value")

// ParseStatus creates a Status from a string. Both "in-progress" and
// "in_progress" are accepted.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "in-progress", "in_progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected pending, in-progress, completed or cancelled)", ErrInvalidStatus, s)
	}
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in-progress"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

// IsCompleted reports whether the task has been completed.
func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

// IsActive reports whether work on the task is still expected.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusInProgress
}
