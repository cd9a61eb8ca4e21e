package services

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
)

// PriorityAdjustment is a proposed change to a task's stored priority.
type PriorityAdjustment struct {
	Task              *task.Task
	CurrentPriority   value_objects.Priority
	SuggestedPriority value_objects.Priority
	UrgencyScore      int
	Reason            string
}

// PriorityAdvisor compares urgency with the stored priority of each task.
type PriorityAdvisor struct{}

// NewPriorityAdvisor creates a new advisor.
func NewPriorityAdvisor() *PriorityAdvisor {
	return &PriorityAdvisor{}
}

// Advise returns one adjustment per active task whose urgency disagrees with
// its priority, in input order.
func (a *PriorityAdvisor) Advise(tasks []*task.Task, now time.Time) []PriorityAdjustment {
	var adjustments []PriorityAdjustment
	for _, t := range tasks {
		if !t.IsActive() {
			continue
		}
		urgency := t.UrgencyScore(now)
		suggested, reason, ok := suggestPriority(t.Priority(), urgency)
		if !ok {
			continue
		}
		adjustments = append(adjustments, PriorityAdjustment{
			Task:              t,
			CurrentPriority:   t.Priority(),
			SuggestedPriority: suggested,
			UrgencyScore:      urgency,
			Reason:            reason,
		})
	}
	return adjustments
}

func suggestPriority(current value_objects.Priority, urgency int) (value_objects.Priority, string, bool) {
	switch {
	case urgency >= 80 && current != value_objects.PriorityUrgent:
		return value_objects.PriorityUrgent,
			fmt.Sprintf("urgency %d is critical; raise from %s to urgent", urgency, current), true
	case urgency < 30 && (current == value_objects.PriorityUrgent || current == value_objects.PriorityHigh):
		return value_objects.PriorityMedium,
			fmt.Sprintf("urgency %d is low for %s priority; lower to medium", urgency, current), true
	case urgency < 20 && current == value_objects.PriorityMedium:
		return value_objects.PriorityLow,
			fmt.Sprintf("urgency %d is minimal; lower from medium to low", urgency), true
	default:
		return current, "", false
	}
}
