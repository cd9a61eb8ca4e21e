package queries

import (
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/application/services"
	"github.com/google/uuid"
)

// PrioritizedTaskDTO is one ranked task as shown to callers.
type PrioritizedTaskDTO struct {
	Rank           int                   `json:"rank"`
	TaskID         uuid.UUID             `json:"task_id"`
	Title          string                `json:"title"`
	Status         string                `json:"status"`
	Priority       string                `json:"priority"`
	DueDate        *time.Time            `json:"due_date,omitempty"`
	Score          int                   `json:"score"`
	Band           string                `json:"band"`
	Recommendation string                `json:"recommendation"`
	Factors        services.FactorScores `json:"factors"`
	UrgencyScore   int                   `json:"urgency_score"`
	UrgencyBand    string                `json:"urgency_band"`
	IsOverdue      bool                  `json:"is_overdue"`
}

// PrioritizationReportDTO is the serializable form of a prioritization run.
type PrioritizationReportDTO struct {
	Tasks           []PrioritizedTaskDTO           `json:"tasks"`
	Summary         services.PrioritizationSummary `json:"summary"`
	Recommendations []string                       `json:"recommendations"`
	EvaluatedAt     time.Time                      `json:"evaluated_at"`
}

// NewPrioritizationReportDTO flattens an engine result, keeping its order.
func NewPrioritizationReportDTO(result services.PrioritizationResult) PrioritizationReportDTO {
	report := PrioritizationReportDTO{
		Tasks:           make([]PrioritizedTaskDTO, len(result.PrioritizedTasks)),
		Summary:         result.Summary,
		Recommendations: result.Recommendations,
		EvaluatedAt:     result.EvaluatedAt,
	}
	if report.Recommendations == nil {
		report.Recommendations = []string{}
	}
	for i, p := range result.PrioritizedTasks {
		report.Tasks[i] = PrioritizedTaskDTO{
			Rank:           i + 1,
			TaskID:         p.Task.ID(),
			Title:          p.Task.Title(),
			Status:         p.Task.Status().String(),
			Priority:       p.Task.Priority().String(),
			DueDate:        p.Task.DueDate(),
			Score:          p.Score,
			Band:           p.Band.Label(),
			Recommendation: p.Recommendation,
			Factors:        p.Factors,
			UrgencyScore:   p.UrgencyScore,
			UrgencyBand:    p.UrgencyBand.Label(),
			IsOverdue:      p.IsOverdue,
		}
	}
	return report
}

// PriorityAdjustmentDTO is one advisor suggestion.
type PriorityAdjustmentDTO struct {
	TaskID            uuid.UUID `json:"task_id"`
	Title             string    `json:"title"`
	CurrentPriority   string    `json:"current_priority"`
	SuggestedPriority string    `json:"suggested_priority"`
	UrgencyScore      int       `json:"urgency_score"`
	Reason            string    `json:"reason"`
}

// NewPriorityAdjustmentDTOs converts advisor output.
func NewPriorityAdjustmentDTOs(adjustments []services.PriorityAdjustment) []PriorityAdjustmentDTO {
	dtos := make([]PriorityAdjustmentDTO, len(adjustments))
	for i, a := range adjustments {
		dtos[i] = PriorityAdjustmentDTO{
			TaskID:            a.Task.ID(),
			Title:             a.Task.Title(),
			CurrentPriority:   a.CurrentPriority.String(),
			SuggestedPriority: a.SuggestedPriority.String(),
			UrgencyScore:      a.UrgencyScore,
			Reason:            a.Reason,
		}
	}
	return dtos
}
