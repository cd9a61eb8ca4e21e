package services

import (
	"sort"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultSearchWindow is used when a request has no latest date.
const DefaultSearchWindow = 14 * 24 * time.Hour

// EngineOptions configures the scheduler engine.
type EngineOptions struct {
	// Parallelism above 1 scores days concurrently. Results are identical to
	// sequential evaluation.
	Parallelism int
	// SearchWindow bounds the search when the request has no latest date.
	SearchWindow time.Duration
}

// SchedulerEngine searches for meeting times.
type SchedulerEngine struct {
	opts   EngineOptions
	scorer *SuggestionScorer
}

// NewSchedulerEngine creates a new scheduler engine.
func NewSchedulerEngine(opts EngineOptions) *SchedulerEngine {
	if opts.SearchWindow <= 0 {
		opts.SearchWindow = DefaultSearchWindow
	}
	return &SchedulerEngine{
		opts:   opts,
		scorer: NewSuggestionScorer(),
	}
}

// SearchPeriod returns the effective [earliest, latest] bounds of a search
// evaluated at now.
func (e *SchedulerEngine) SearchPeriod(req domain.SchedulingRequest, now time.Time) (time.Time, time.Time) {
	earliest := now
	if req.EarliestDate != nil {
		earliest = *req.EarliestDate
	}
	latest := earliest.Add(e.opts.SearchWindow)
	if req.LatestDate != nil {
		latest = *req.LatestDate
	}
	return earliest, latest
}

// SuggestMeetingTimes ranks candidate slots for the request. now is the
// single evaluation time of the call; slots starting before it are never
// suggested. Invalid requests yield a result carrying only the validation
// errors.
func (e *SchedulerEngine) SuggestMeetingTimes(req domain.SchedulingRequest, meetings []domain.Meeting, now time.Time) domain.SchedulingResult {
	if errs := domain.ValidateMeetingRequest(req); len(errs) > 0 {
		return domain.SchedulingResult{ValidationErrors: errs, EvaluatedAt: now}
	}

	loc := req.Loc()
	earliest, latest := e.SearchPeriod(req, now)
	if earliest.Before(now) {
		earliest = now
	}

	windows := BuildAvailabilityWindows(earliest, latest, req.Hours(), req.ExcludeWeekends, loc)
	perDay := make([][]domain.SchedulingSuggestion, len(windows))

	scoreDay := func(i int) {
		perDay[i] = e.scoreWindow(windows[i], req, meetings, earliest, latest)
	}
	if e.opts.Parallelism > 1 && len(windows) > 1 {
		var g errgroup.Group
		g.SetLimit(e.opts.Parallelism)
		for i := range windows {
			g.Go(func() error {
				scoreDay(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range windows {
			scoreDay(i)
		}
	}

	var all []domain.SchedulingSuggestion
	for _, day := range perDay {
		all = append(all, day...)
	}

	// Candidates are generated chronologically, so a stable sort breaks
	// score ties by earlier start.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})

	return summarize(all, now)
}

func (e *SchedulerEngine) scoreWindow(
	window domain.AvailabilityWindow,
	req domain.SchedulingRequest,
	meetings []domain.Meeting,
	earliest, latest time.Time,
) []domain.SchedulingSuggestion {
	var suggestions []domain.SchedulingSuggestion
	for _, slot := range window.AvailableSlots {
		candidate, err := domain.TimeRangeFor(slot.Start(), req.Duration())
		if err != nil {
			continue
		}
		if !window.Hours.Encloses(candidate) {
			continue
		}
		if candidate.Start().Before(earliest) || candidate.End().After(latest) {
			continue
		}
		suggestions = append(suggestions, e.scorer.Score(candidate, req, meetings))
	}
	return suggestions
}

func summarize(ranked []domain.SchedulingSuggestion, now time.Time) domain.SchedulingResult {
	result := domain.SchedulingResult{
		CandidatesScored: len(ranked),
		EvaluatedAt:      now,
	}
	if len(ranked) == 0 {
		return result
	}

	best := ranked[0]
	for _, s := range ranked {
		if !s.HasConflicts() {
			best = s
			break
		}
	}
	result.BestSuggestion = &best

	top := ranked
	if len(top) > domain.MaxSuggestions {
		top = top[:domain.MaxSuggestions]
	}
	result.Suggestions = append([]domain.SchedulingSuggestion(nil), top...)

	seen := make(map[uuid.UUID]struct{})
	for _, s := range result.Suggestions {
		if s.IsOptimal() {
			result.Summary.OptimalSlots++
		}
		for _, m := range s.ConflictingMeetings {
			if _, ok := seen[m.ID()]; ok {
				continue
			}
			seen[m.ID()] = struct{}{}
			result.Conflicts = append(result.Conflicts, m)
		}
	}

	result.Summary.TotalSuggestions = len(result.Suggestions)
	result.Summary.SuboptimalSlots = result.Summary.TotalSuggestions - result.Summary.OptimalSlots
	result.Summary.ConflictCount = len(result.Conflicts)
	return result
}
