package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	"golang.org/x/sync/errgroup"
)

// Weights tunes how the five factor scores combine into a task score.
// Weights are not normalized; the final score is clamped to [0,100].
type Weights struct {
	DueDate           float64
	Priority          float64
	Status            float64
	Dependency        float64
	EstimatedDuration float64
}

// DefaultWeights returns the standard factor weights.
func DefaultWeights() Weights {
	return Weights{
		DueDate:           0.30,
		Priority:          0.25,
		Status:            0.20,
		Dependency:        0.15,
		EstimatedDuration: 0.10,
	}
}

// PrioritizationCriteria carries caller-supplied weights. Each nil field
// falls back to its default independently.
type PrioritizationCriteria struct {
	DueDateWeight           *float64
	PriorityWeight          *float64
	StatusWeight            *float64
	DependencyWeight        *float64
	EstimatedDurationWeight *float64
}

// Resolve returns the concrete weights for these criteria.
func (c PrioritizationCriteria) Resolve() Weights {
	w := DefaultWeights()
	if c.DueDateWeight != nil {
		w.DueDate = *c.DueDateWeight
	}
	if c.PriorityWeight != nil {
		w.Priority = *c.PriorityWeight
	}
	if c.StatusWeight != nil {
		w.Status = *c.StatusWeight
	}
	if c.DependencyWeight != nil {
		w.Dependency = *c.DependencyWeight
	}
	if c.EstimatedDurationWeight != nil {
		w.EstimatedDuration = *c.EstimatedDurationWeight
	}
	return w
}

// Band is a recommendation band derived from a score.
type Band int

const (
	BandDefer Band = iota
	BandLow
	BandMedium
	BandHigh
	BandCritical
)

// BandForScore maps a 0-100 score to its recommendation band.
func BandForScore(score int) Band {
	switch {
	case score >= 90:
		return BandCritical
	case score >= 80:
		return BandHigh
	case score >= 60:
		return BandMedium
	case score >= 40:
		return BandLow
	default:
		return BandDefer
	}
}

// Label returns the short band name.
func (b Band) Label() string {
	switch b {
	case BandCritical:
		return "Critical"
	case BandHigh:
		return "High"
	case BandMedium:
		return "Medium"
	case BandLow:
		return "Low"
	default:
		return "Defer"
	}
}

// Recommendation returns the action text for the band.
func (b Band) Recommendation() string {
	switch b {
	case BandCritical:
		return "Critical – handle immediately"
	case BandHigh:
		return "High – schedule today"
	case BandMedium:
		return "Medium – schedule this week"
	case BandLow:
		return "Low – schedule when convenient"
	default:
		return "Defer – consider delegating or postponing"
	}
}

func (b Band) String() string { return b.Label() }

// FactorScores are the unweighted 0-100 component scores of a task.
type FactorScores struct {
	DueDate           int `json:"due_date"`
	Priority          int `json:"priority"`
	Status            int `json:"status"`
	Dependencies      int `json:"dependencies"`
	EstimatedDuration int `json:"estimated_duration"`
}

// PrioritizedTask is one ranked task with its explanation.
type PrioritizedTask struct {
	Task           *task.Task
	Score          int
	Band           Band
	Recommendation string
	Factors        FactorScores
	UrgencyScore   int
	UrgencyBand    Band
	IsOverdue      bool
}

// Explanation renders the factor breakdown of the task.
func (p PrioritizedTask) Explanation() string {
	return fmt.Sprintf(
		"due=%d priority=%d status=%d dependencies=%d duration=%d urgency=%d",
		p.Factors.DueDate,
		p.Factors.Priority,
		p.Factors.Status,
		p.Factors.Dependencies,
		p.Factors.EstimatedDuration,
		p.UrgencyScore,
	)
}

// PrioritizationSummary buckets tasks by score and counts signals that
// feed the recommendations.
type PrioritizationSummary struct {
	Total          int `json:"total"`
	Critical       int `json:"critical"`
	High           int `json:"high"`
	Medium         int `json:"medium"`
	Low            int `json:"low"`
	Overdue        int `json:"overdue"`
	InProgress     int `json:"in_progress"`
	HighPriority   int `json:"high_priority"`
	MissingDueDate int `json:"missing_due_date"`
}

// PrioritizationResult is the outcome of one prioritization run.
type PrioritizationResult struct {
	PrioritizedTasks []PrioritizedTask
	Summary          PrioritizationSummary
	Recommendations  []string
	EvaluatedAt      time.Time
}

// EngineOptions configures evaluation. Parallelism above 1 scores tasks
// concurrently; the result is identical to sequential evaluation.
type EngineOptions struct {
	Parallelism int
}

// PriorityEngine ranks tasks using weighted multi-factor scoring.
type PriorityEngine struct {
	opts EngineOptions
}

// NewPriorityEngine creates a new engine with the given options.
func NewPriorityEngine(opts EngineOptions) *PriorityEngine {
	return &PriorityEngine{opts: opts}
}

// Prioritize scores, ranks and summarizes the given tasks against a single
// evaluation time. The input slice is not modified.
func (e *PriorityEngine) Prioritize(tasks []*task.Task, criteria PrioritizationCriteria, now time.Time) PrioritizationResult {
	weights := criteria.Resolve()
	ranked := make([]PrioritizedTask, len(tasks))

	if e.opts.Parallelism > 1 && len(tasks) > 1 {
		var g errgroup.Group
		g.SetLimit(e.opts.Parallelism)
		for i, t := range tasks {
			g.Go(func() error {
				ranked[i] = e.evaluate(t, weights, now)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, t := range tasks {
			ranked[i] = e.evaluate(t, weights, now)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	summary := summarize(ranked, now)

	return PrioritizationResult{
		PrioritizedTasks: ranked,
		Summary:          summary,
		Recommendations:  recommendations(summary),
		EvaluatedAt:      now,
	}
}

// Evaluate scores a single task without ranking it.
func (e *PriorityEngine) Evaluate(t *task.Task, criteria PrioritizationCriteria, now time.Time) PrioritizedTask {
	return e.evaluate(t, criteria.Resolve(), now)
}

func (e *PriorityEngine) evaluate(t *task.Task, w Weights, now time.Time) PrioritizedTask {
	factors := FactorScores{
		DueDate:           dueDateFactor(t.DueDate(), now),
		Priority:          priorityFactor(t.Priority()),
		Status:            statusFactor(t.Status()),
		Dependencies:      dependencyFactor(t.DependencyCount()),
		EstimatedDuration: durationFactor(t.EstimatedDuration()),
	}

	weighted := float64(factors.DueDate)*w.DueDate +
		float64(factors.Priority)*w.Priority +
		float64(factors.Status)*w.Status +
		float64(factors.Dependencies)*w.Dependency +
		float64(factors.EstimatedDuration)*w.EstimatedDuration

	score := clampScore(int(math.Round(weighted)))
	band := BandForScore(score)
	urgency := t.UrgencyScore(now)

	return PrioritizedTask{
		Task:           t,
		Score:          score,
		Band:           band,
		Recommendation: band.Recommendation(),
		Factors:        factors,
		UrgencyScore:   urgency,
		UrgencyBand:    BandForScore(urgency),
		IsOverdue:      t.IsOverdue(now),
	}
}

// dueDateFactor bands the days until due with the same day count as the
// task urgency score.
func dueDateFactor(due *time.Time, now time.Time) int {
	if due == nil {
		return 20
	}
	days := task.DaysUntil(*due, now)
	switch {
	case days < 0:
		return 100
	case days == 0:
		return 90
	case days == 1:
		return 80
	case days <= 3:
		return 70
	case days <= 7:
		return 50
	case days <= 14:
		return 30
	case days <= 30:
		return 20
	default:
		return 10
	}
}

func priorityFactor(p value_objects.Priority) int {
	switch p {
	case value_objects.PriorityUrgent:
		return 100
	case value_objects.PriorityHigh:
		return 75
	case value_objects.PriorityMedium:
		return 50
	case value_objects.PriorityLow:
		return 25
	default:
		return 0
	}
}

func statusFactor(s value_objects.Status) int {
	switch s {
	case value_objects.StatusInProgress:
		return 80
	case value_objects.StatusPending:
		return 60
	default:
		return 0
	}
}

func dependencyFactor(count int) int {
	if count == 0 {
		return 80
	}
	score := 80 - 10*count
	if score < 20 {
		return 20
	}
	return score
}

func durationFactor(estimate value_objects.Duration, ok bool) int {
	if !ok {
		return 50
	}
	minutes := estimate.Minutes()
	switch {
	case minutes <= 30:
		return 80
	case minutes <= 60:
		return 70
	case minutes <= 120:
		return 60
	case minutes <= 240:
		return 50
	case minutes <= 480:
		return 40
	default:
		return 30
	}
}

func summarize(ranked []PrioritizedTask, now time.Time) PrioritizationSummary {
	summary := PrioritizationSummary{Total: len(ranked)}
	for _, p := range ranked {
		switch {
		case p.Score >= 90:
			summary.Critical++
		case p.Score >= 80:
			summary.High++
		case p.Score >= 60:
			summary.Medium++
		default:
			summary.Low++
		}

		t := p.Task
		if t.IsOverdue(now) {
			summary.Overdue++
		}
		if t.Status() == value_objects.StatusInProgress {
			summary.InProgress++
		}
		if t.IsActive() && t.Priority().IsHighOrAbove() {
			summary.HighPriority++
		}
		if t.IsActive() && t.DueDate() == nil {
			summary.MissingDueDate++
		}
	}
	return summary
}

func recommendations(s PrioritizationSummary) []string {
	recs := make([]string, 0, 4)
	if s.Overdue > 0 {
		recs = append(recs, fmt.Sprintf("%d overdue task(s) need immediate attention", s.Overdue))
	}
	if s.InProgress > 3 {
		recs = append(recs, fmt.Sprintf("%d tasks are in progress; finish some before starting new work", s.InProgress))
	}
	if s.HighPriority > 5 {
		recs = append(recs, fmt.Sprintf("%d tasks are marked high or urgent; review whether all of them still are", s.HighPriority))
	}
	if s.MissingDueDate > 0 {
		recs = append(recs, fmt.Sprintf("%d task(s) have no due date; add one to improve prioritization", s.MissingDueDate))
	}
	return recs
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
