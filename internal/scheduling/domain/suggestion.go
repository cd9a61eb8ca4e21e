package domain

import "time"

// MaxSuggestions caps the number of suggestions returned by a search.
const MaxSuggestions = 10

// OptimalScore is the lowest score a conflict-free suggestion needs to be
// counted as optimal.
const OptimalScore = 80

// AvailabilityWindow holds one calendar day's candidate slots.
type AvailabilityWindow struct {
	Date           time.Time
	Hours          TimeRange
	AvailableSlots []TimeRange
}

// SchedulingSuggestion is one scored candidate slot.
type SchedulingSuggestion struct {
	TimeSlot  TimeRange
	Score     int
	Conflicts []string
	Reasons   []string
	// ConflictingMeetings are the meetings behind the Conflicts notes.
	ConflictingMeetings []Meeting
}

// HasConflicts reports whether any existing meeting conflicts with the slot.
func (s SchedulingSuggestion) HasConflicts() bool {
	return len(s.ConflictingMeetings) > 0
}

// IsOptimal reports whether the slot is conflict-free and scores at least
// OptimalScore.
func (s SchedulingSuggestion) IsOptimal() bool {
	return !s.HasConflicts() && s.Score >= OptimalScore
}

// SchedulingSummary aggregates a search.
type SchedulingSummary struct {
	TotalSuggestions int `json:"total_suggestions"`
	OptimalSlots     int `json:"optimal_slots"`
	SuboptimalSlots  int `json:"suboptimal_slots"`
	ConflictCount    int `json:"conflict_count"`
}

// SchedulingResult is the outcome of a meeting time search. When the
// request is invalid only ValidationErrors is populated.
type SchedulingResult struct {
	Suggestions      []SchedulingSuggestion
	BestSuggestion   *SchedulingSuggestion
	Conflicts        []Meeting
	Summary          SchedulingSummary
	ValidationErrors []string
	CandidatesScored int
	EvaluatedAt      time.Time
}

// IsValid reports whether the request passed validation.
func (r SchedulingResult) IsValid() bool {
	return len(r.ValidationErrors) == 0
}
