package services

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
)

const (
	baseScore                = 100
	conflictPenalty          = 20
	preferredTimeBonus       = 20
	preferredTimeMissPenalty = 10
	morningBonus             = 15
	afternoonBonus           = 10
	offHoursPenalty          = 15
	midWeekBonus             = 10
	edgeOfWeekPenalty        = 5
	longMeetingPenalty       = 10
	shortMeetingBonus        = 5
)

// SuggestionScorer evaluates one candidate slot. Every rule is additive and
// independent of the others; the sum is clamped to [0,100].
type SuggestionScorer struct{}

// NewSuggestionScorer creates a new scorer.
func NewSuggestionScorer() *SuggestionScorer {
	return &SuggestionScorer{}
}

// Score rates the candidate for the request given the existing meetings.
func (s *SuggestionScorer) Score(candidate domain.TimeRange, req domain.SchedulingRequest, meetings []domain.Meeting) domain.SchedulingSuggestion {
	loc := req.Loc()
	score := baseScore
	var reasons, notes []string

	conflicts := domain.FindConflicts(candidate, req.Buffer(), meetings)
	if n := len(conflicts); n > 0 {
		score -= conflictPenalty * n
		reasons = append(reasons, fmt.Sprintf("Conflicts with %d existing meeting(s)", n))
		for _, m := range conflicts {
			notes = append(notes, domain.ConflictNote(m, loc))
		}
	}

	if len(req.PreferredTimes) > 0 {
		if matchesPreferred(candidate, req.PreferredTimes) {
			score += preferredTimeBonus
			reasons = append(reasons, "Matches preferred time")
		} else {
			score -= preferredTimeMissPenalty
			reasons = append(reasons, "Outside preferred times")
		}
	}

	local := candidate.Start().In(loc)
	switch hour := local.Hour(); {
	case hour >= 10 && hour <= 11:
		score += morningBonus
		reasons = append(reasons, "Optimal morning time")
	case hour >= 14 && hour <= 15:
		score += afternoonBonus
		reasons = append(reasons, "Good afternoon time")
	case hour < 9 || hour > 16:
		score -= offHoursPenalty
		reasons = append(reasons, "Outside typical working hours")
	}

	switch local.Weekday() {
	case time.Tuesday, time.Wednesday, time.Thursday:
		score += midWeekBonus
		reasons = append(reasons, "Mid-week scheduling")
	case time.Monday, time.Friday:
		score -= edgeOfWeekPenalty
		reasons = append(reasons, "Monday/Friday scheduling")
	}

	switch {
	case req.DurationMinutes > 120:
		score -= longMeetingPenalty
		reasons = append(reasons, "Long meeting duration")
	case req.DurationMinutes <= 30:
		score += shortMeetingBonus
		reasons = append(reasons, "Short meeting - easy to fit")
	}

	return domain.SchedulingSuggestion{
		TimeSlot:            candidate,
		Score:               clampScore(score),
		Conflicts:           notes,
		Reasons:             reasons,
		ConflictingMeetings: conflicts,
	}
}

func matchesPreferred(candidate domain.TimeRange, preferred []domain.TimeRange) bool {
	for _, p := range preferred {
		if candidate.Overlaps(p) {
			return true
		}
	}
	return false
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
