package services

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityAdvisor_Advise(t *testing.T) {
	advisor := NewPriorityAdvisor()

	dueSoon := buildTask(t, taskFixture{title: "due soon", priority: value_objects.PriorityMedium, due: offset(12 * time.Hour)})
	calm := buildTask(t, taskFixture{title: "calm", priority: value_objects.PriorityMedium})
	alreadyUrgent := buildTask(t, taskFixture{title: "urgent", priority: value_objects.PriorityUrgent, due: offset(-time.Hour)})
	overdueButDone := buildTask(t, taskFixture{title: "done", priority: value_objects.PriorityLow, due: offset(-48 * time.Hour), completed: true})
	overdueLow := buildTask(t, taskFixture{title: "overdue low", priority: value_objects.PriorityLow, due: offset(-48 * time.Hour), inProgress: true})

	adjustments := advisor.Advise([]*task.Task{dueSoon, calm, alreadyUrgent, overdueButDone, overdueLow}, evalTime)

	require.Len(t, adjustments, 2)

	assert.Same(t, dueSoon, adjustments[0].Task)
	assert.Equal(t, value_objects.PriorityMedium, adjustments[0].CurrentPriority)
	assert.Equal(t, value_objects.PriorityUrgent, adjustments[0].SuggestedPriority)
	assert.Equal(t, 80, adjustments[0].UrgencyScore)
	assert.Contains(t, adjustments[0].Reason, "raise from medium to urgent")

	assert.Same(t, overdueLow, adjustments[1].Task)
	assert.Equal(t, 95, adjustments[1].UrgencyScore)
	assert.Equal(t, value_objects.PriorityUrgent, adjustments[1].SuggestedPriority)
}

func TestPriorityAdvisor_NoSuggestions(t *testing.T) {
	advisor := NewPriorityAdvisor()
	tasks := []*task.Task{
		buildTask(t, taskFixture{priority: value_objects.PriorityLow}),
		buildTask(t, taskFixture{priority: value_objects.PriorityHigh, due: offset(10 * 24 * time.Hour)}),
	}

	assert.Empty(t, advisor.Advise(tasks, evalTime))
}

func TestSuggestPriority(t *testing.T) {
	tests := []struct {
		name      string
		current   value_objects.Priority
		urgency   int
		suggested value_objects.Priority
		changed   bool
	}{
		{"high urgency upgrades low", value_objects.PriorityLow, 80, value_objects.PriorityUrgent, true},
		{"high urgency upgrades high", value_objects.PriorityHigh, 95, value_objects.PriorityUrgent, true},
		{"urgent stays urgent", value_objects.PriorityUrgent, 100, value_objects.PriorityUrgent, false},
		{"low urgency downgrades urgent", value_objects.PriorityUrgent, 29, value_objects.PriorityMedium, true},
		{"low urgency downgrades high", value_objects.PriorityHigh, 10, value_objects.PriorityMedium, true},
		{"minimal urgency downgrades medium", value_objects.PriorityMedium, 19, value_objects.PriorityLow, true},
		{"medium at boundary stays", value_objects.PriorityMedium, 20, value_objects.PriorityMedium, false},
		{"high at boundary stays", value_objects.PriorityHigh, 30, value_objects.PriorityHigh, false},
		{"low never downgrades", value_objects.PriorityLow, 5, value_objects.PriorityLow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggested, reason, changed := suggestPriority(tt.current, tt.urgency)

			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.suggested, suggested)
			if changed {
				assert.NotEmpty(t, reason)
			}
		})
	}
}
