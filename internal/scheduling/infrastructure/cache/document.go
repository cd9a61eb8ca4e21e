package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/google/uuid"
)

// The domain types keep their fields unexported, so cached results are
// stored as documents and rehydrated on read.

type rangeDocument struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type meetingDocument struct {
	ID         uuid.UUID     `json:"id"`
	UserID     uuid.UUID     `json:"user_id"`
	Title      string        `json:"title"`
	Range      rangeDocument `json:"range"`
	Status     string        `json:"status"`
	Source     string        `json:"source"`
	ExternalID string        `json:"external_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type suggestionDocument struct {
	TimeSlot    rangeDocument `json:"time_slot"`
	Score       int           `json:"score"`
	Conflicts   []string      `json:"conflicts,omitempty"`
	Reasons     []string      `json:"reasons,omitempty"`
	Conflicting []uuid.UUID   `json:"conflicting,omitempty"`
}

type resultDocument struct {
	Suggestions      []suggestionDocument     `json:"suggestions"`
	Best             *int                     `json:"best,omitempty"`
	BestSuggestion   *suggestionDocument      `json:"best_suggestion,omitempty"`
	Meetings         []meetingDocument        `json:"meetings,omitempty"`
	Conflicts        []uuid.UUID              `json:"conflicts,omitempty"`
	Summary          domain.SchedulingSummary `json:"summary"`
	ValidationErrors []string                 `json:"validation_errors,omitempty"`
	CandidatesScored int                      `json:"candidates_scored"`
	EvaluatedAt      time.Time                `json:"evaluated_at"`
}

// encodeResult serializes a scheduling result. Meetings referenced by
// suggestions and conflicts are stored once and referenced by id.
func encodeResult(r domain.SchedulingResult) ([]byte, error) {
	doc := resultDocument{
		Summary:          r.Summary,
		ValidationErrors: r.ValidationErrors,
		CandidatesScored: r.CandidatesScored,
		EvaluatedAt:      r.EvaluatedAt,
	}

	seen := make(map[uuid.UUID]bool)
	addMeeting := func(m domain.Meeting) uuid.UUID {
		if !seen[m.ID()] {
			seen[m.ID()] = true
			doc.Meetings = append(doc.Meetings, toMeetingDocument(m))
		}
		return m.ID()
	}

	encodeSuggestion := func(s domain.SchedulingSuggestion) suggestionDocument {
		sd := suggestionDocument{
			TimeSlot:  toRangeDocument(s.TimeSlot),
			Score:     s.Score,
			Conflicts: s.Conflicts,
			Reasons:   s.Reasons,
		}
		for _, m := range s.ConflictingMeetings {
			sd.Conflicting = append(sd.Conflicting, addMeeting(m))
		}
		return sd
	}

	for i, s := range r.Suggestions {
		doc.Suggestions = append(doc.Suggestions, encodeSuggestion(s))
		if r.BestSuggestion != nil && doc.Best == nil && s.TimeSlot.Equal(r.BestSuggestion.TimeSlot) {
			idx := i
			doc.Best = &idx
		}
	}
	if r.BestSuggestion != nil && doc.Best == nil {
		best := encodeSuggestion(*r.BestSuggestion)
		doc.BestSuggestion = &best
	}
	for _, m := range r.Conflicts {
		doc.Conflicts = append(doc.Conflicts, addMeeting(m))
	}

	return json.Marshal(doc)
}

func decodeResult(data []byte) (domain.SchedulingResult, error) {
	var doc resultDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.SchedulingResult{}, fmt.Errorf("failed to decode cached result: %w", err)
	}

	meetings := make(map[uuid.UUID]domain.Meeting, len(doc.Meetings))
	for _, md := range doc.Meetings {
		m, err := md.toMeeting()
		if err != nil {
			return domain.SchedulingResult{}, err
		}
		meetings[m.ID()] = m
	}
	lookup := func(ids []uuid.UUID) ([]domain.Meeting, error) {
		var out []domain.Meeting
		for _, id := range ids {
			m, ok := meetings[id]
			if !ok {
				return nil, fmt.Errorf("cached result references unknown meeting %s", id)
			}
			out = append(out, m)
		}
		return out, nil
	}
	decodeSuggestion := func(sd suggestionDocument) (domain.SchedulingSuggestion, error) {
		slot, err := sd.TimeSlot.toRange()
		if err != nil {
			return domain.SchedulingSuggestion{}, err
		}
		conflicting, err := lookup(sd.Conflicting)
		if err != nil {
			return domain.SchedulingSuggestion{}, err
		}
		return domain.SchedulingSuggestion{
			TimeSlot:            slot,
			Score:               sd.Score,
			Conflicts:           sd.Conflicts,
			Reasons:             sd.Reasons,
			ConflictingMeetings: conflicting,
		}, nil
	}

	result := domain.SchedulingResult{
		Summary:          doc.Summary,
		ValidationErrors: doc.ValidationErrors,
		CandidatesScored: doc.CandidatesScored,
		EvaluatedAt:      doc.EvaluatedAt,
	}
	for _, sd := range doc.Suggestions {
		s, err := decodeSuggestion(sd)
		if err != nil {
			return domain.SchedulingResult{}, err
		}
		result.Suggestions = append(result.Suggestions, s)
	}
	switch {
	case doc.Best != nil:
		if *doc.Best < 0 || *doc.Best >= len(result.Suggestions) {
			return domain.SchedulingResult{}, fmt.Errorf("cached best suggestion index %d out of range", *doc.Best)
		}
		best := result.Suggestions[*doc.Best]
		result.BestSuggestion = &best
	case doc.BestSuggestion != nil:
		best, err := decodeSuggestion(*doc.BestSuggestion)
		if err != nil {
			return domain.SchedulingResult{}, err
		}
		result.BestSuggestion = &best
	}
	conflicts, err := lookup(doc.Conflicts)
	if err != nil {
		return domain.SchedulingResult{}, err
	}
	result.Conflicts = conflicts

	return result, nil
}

func toRangeDocument(r domain.TimeRange) rangeDocument {
	return rangeDocument{Start: r.Start(), End: r.End()}
}

func (d rangeDocument) toRange() (domain.TimeRange, error) {
	return domain.NewTimeRange(d.Start, d.End)
}

func toMeetingDocument(m domain.Meeting) meetingDocument {
	return meetingDocument{
		ID:         m.ID(),
		UserID:     m.UserID(),
		Title:      m.Title(),
		Range:      toRangeDocument(m.DateRange()),
		Status:     string(m.Status()),
		Source:     m.Source(),
		ExternalID: m.ExternalID(),
		CreatedAt:  m.CreatedAt(),
		UpdatedAt:  m.UpdatedAt(),
	}
}

func (d meetingDocument) toMeeting() (domain.Meeting, error) {
	dateRange, err := d.Range.toRange()
	if err != nil {
		return domain.Meeting{}, err
	}
	status, err := domain.ParseMeetingStatus(d.Status)
	if err != nil {
		return domain.Meeting{}, err
	}
	return domain.RehydrateMeeting(d.ID, d.UserID, d.Title, dateRange, status, d.Source, d.ExternalID, d.CreatedAt, d.UpdatedAt), nil
}
