package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyMeetingTitle   = errors.New("meeting title cannot be empty")
	ErrInvalidMeetingState = errors.New("invalid meeting status")
)

// MeetingStatus is the lifecycle state of an existing meeting.
type MeetingStatus string

const (
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusInProgress MeetingStatus = "in-progress"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusCancelled  MeetingStatus = "cancelled"
)

// ParseMeetingStatus converts a string into a MeetingStatus.
func ParseMeetingStatus(s string) (MeetingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled", "confirmed", "tentative":
		return MeetingStatusScheduled, nil
	case "in-progress", "in_progress":
		return MeetingStatusInProgress, nil
	case "completed":
		return MeetingStatusCompleted, nil
	case "cancelled", "canceled":
		return MeetingStatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMeetingState, s)
	}
}

// BlocksTime reports whether a meeting in this state can conflict with a
// new one.
func (s MeetingStatus) BlocksTime() bool {
	return s == MeetingStatusScheduled || s == MeetingStatusInProgress
}

// Meeting sources.
const (
	SourceLocal  = "local"
	SourceCalDAV = "caldav"
	SourceGoogle = "google"
)

// Meeting is an immutable snapshot of an existing calendar entry. Changing
// a meeting produces a new value.
type Meeting struct {
	id         uuid.UUID
	userID     uuid.UUID
	title      string
	dateRange  TimeRange
	status     MeetingStatus
	source     string
	externalID string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewMeeting creates a scheduled meeting recorded locally.
func NewMeeting(userID uuid.UUID, title string, dateRange TimeRange, now time.Time) (Meeting, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Meeting{}, ErrEmptyMeetingTitle
	}
	if dateRange.IsZero() {
		return Meeting{}, ErrInvalidTimeRange
	}
	now = now.UTC()
	return Meeting{
		id:        uuid.New(),
		userID:    userID,
		title:     title,
		dateRange: dateRange,
		status:    MeetingStatusScheduled,
		source:    SourceLocal,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewExternalMeeting creates a snapshot of a meeting owned by a calendar
// provider. The id is derived from the source and external id so repeated
// fetches yield the same identity.
func NewExternalMeeting(userID uuid.UUID, source, externalID, title string, dateRange TimeRange, status MeetingStatus) Meeting {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(source+":"+externalID))
	return Meeting{
		id:         id,
		userID:     userID,
		title:      strings.TrimSpace(title),
		dateRange:  dateRange,
		status:     status,
		source:     source,
		externalID: externalID,
	}
}

// RehydrateMeeting recreates a meeting from persisted state.
func RehydrateMeeting(
	id uuid.UUID,
	userID uuid.UUID,
	title string,
	dateRange TimeRange,
	status MeetingStatus,
	source string,
	externalID string,
	createdAt time.Time,
	updatedAt time.Time,
) Meeting {
	return Meeting{
		id:         id,
		userID:     userID,
		title:      title,
		dateRange:  dateRange,
		status:     status,
		source:     source,
		externalID: externalID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (m Meeting) ID() uuid.UUID          { return m.id }
func (m Meeting) UserID() uuid.UUID      { return m.userID }
func (m Meeting) Title() string          { return m.title }
func (m Meeting) DateRange() TimeRange   { return m.dateRange }
func (m Meeting) Status() MeetingStatus  { return m.status }
func (m Meeting) Source() string         { return m.source }
func (m Meeting) ExternalID() string     { return m.externalID }
func (m Meeting) CreatedAt() time.Time   { return m.createdAt }
func (m Meeting) UpdatedAt() time.Time   { return m.updatedAt }
func (m Meeting) BlocksTime() bool       { return m.status.BlocksTime() }

// WithStatus returns a copy of the meeting in the given state.
func (m Meeting) WithStatus(status MeetingStatus, now time.Time) Meeting {
	m.status = status
	m.updatedAt = now.UTC()
	return m
}
