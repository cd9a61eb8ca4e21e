package queries

import (
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
)

// SuggestionDTO is one ranked slot as shown to callers.
type SuggestionDTO struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Score     int       `json:"score"`
	Optimal   bool      `json:"optimal"`
	Conflicts []string  `json:"conflicts"`
	Reasons   []string  `json:"reasons"`
}

// SchedulingResultDTO is the serializable form of a meeting time search.
type SchedulingResultDTO struct {
	Suggestions        []SuggestionDTO          `json:"suggestions"`
	Best               *SuggestionDTO           `json:"best_suggestion,omitempty"`
	Conflicts          []MeetingDTO             `json:"conflicts"`
	Summary            domain.SchedulingSummary `json:"summary"`
	ValidationErrors   []string                 `json:"validation_errors,omitempty"`
	CandidatesScored   int                      `json:"candidates_scored"`
	MeetingsConsidered int                      `json:"meetings_considered"`
	FromCache          bool                     `json:"from_cache"`
	EvaluatedAt        time.Time                `json:"evaluated_at"`
}

// NewSuggestionDTO converts one suggestion, rendering times in loc.
func NewSuggestionDTO(s domain.SchedulingSuggestion, loc *time.Location) SuggestionDTO {
	slot := s.TimeSlot.In(loc)
	dto := SuggestionDTO{
		Start:     slot.Start(),
		End:       slot.End(),
		Score:     s.Score,
		Optimal:   s.IsOptimal(),
		Conflicts: s.Conflicts,
		Reasons:   s.Reasons,
	}
	if dto.Conflicts == nil {
		dto.Conflicts = []string{}
	}
	if dto.Reasons == nil {
		dto.Reasons = []string{}
	}
	return dto
}

// NewSchedulingResultDTO converts a search result.
func NewSchedulingResultDTO(res *SuggestMeetingTimesResult, loc *time.Location) SchedulingResultDTO {
	if loc == nil {
		loc = time.UTC
	}
	dto := SchedulingResultDTO{
		Suggestions:        make([]SuggestionDTO, len(res.Suggestions)),
		Conflicts:          make([]MeetingDTO, len(res.Conflicts)),
		Summary:            res.Summary,
		ValidationErrors:   res.ValidationErrors,
		CandidatesScored:   res.CandidatesScored,
		MeetingsConsidered: res.MeetingsConsidered,
		FromCache:          res.FromCache,
		EvaluatedAt:        res.EvaluatedAt,
	}
	for i, s := range res.Suggestions {
		dto.Suggestions[i] = NewSuggestionDTO(s, loc)
	}
	for i, m := range res.Conflicts {
		dto.Conflicts[i] = NewMeetingDTO(m)
	}
	if res.BestSuggestion != nil {
		best := NewSuggestionDTO(*res.BestSuggestion, loc)
		dto.Best = &best
	}
	return dto
}
