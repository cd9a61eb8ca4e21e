package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/felixgeelhaar/execassist/internal/productivity/application/commands"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/queries"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/services"
	"github.com/felixgeelhaar/mcp-go"
	"github.com/google/uuid"
)

type taskCreateInput struct {
	Title       string   `json:"title" jsonschema:"required"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
}

type taskListInput struct {
	Status    string `json:"status,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Overdue   bool   `json:"overdue,omitempty"`
	SortBy    string `json:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

type taskPrioritizeInput struct {
	IncludeAll       bool     `json:"include_all,omitempty"`
	DueDateWeight    *float64 `json:"due_date_weight,omitempty"`
	PriorityWeight   *float64 `json:"priority_weight,omitempty"`
	StatusWeight     *float64 `json:"status_weight,omitempty"`
	DependencyWeight *float64 `json:"dependency_weight,omitempty"`
	DurationWeight   *float64 `json:"duration_weight,omitempty"`
}

func (in taskPrioritizeInput) criteria() services.PrioritizationCriteria {
	return services.PrioritizationCriteria{
		DueDateWeight:           in.DueDateWeight,
		PriorityWeight:          in.PriorityWeight,
		StatusWeight:            in.StatusWeight,
		DependencyWeight:        in.DependencyWeight,
		EstimatedDurationWeight: in.DurationWeight,
	}
}

type taskCreateOutput struct {
	TaskID uuid.UUID `json:"task_id"`
}

type taskStatusOutput struct {
	TaskID uuid.UUID `json:"task_id"`
	Status string    `json:"status"`
}

type recalcOutput struct {
	UpdatedCount int     `json:"updated_count"`
	AverageScore float64 `json:"average_score"`
}

func registerTaskTools(srv *mcp.Server, t *toolSet) {
	srv.Tool("task.create").
		Description("Create a new task").
		Handler(t.taskCreate)

	srv.Tool("task.list").
		Description("List tasks with filters").
		Handler(t.taskList)

	srv.Tool("task.get").
		Description("Get one task with its urgency").
		Handler(t.taskGet)

	srv.Tool("task.start").
		Description("Mark a task as in progress").
		Handler(t.statusTool(commands.ActionStart))

	srv.Tool("task.complete").
		Description("Mark a task as complete").
		Handler(t.statusTool(commands.ActionComplete))

	srv.Tool("task.cancel").
		Description("Cancel a task").
		Handler(t.statusTool(commands.ActionCancel))

	srv.Tool("task.prioritize").
		Description("Rank tasks by weighted priority score with recommendations").
		Handler(t.taskPrioritize)

	srv.Tool("task.advise").
		Description("Suggest priority changes for tasks whose urgency disagrees with their priority").
		Handler(t.taskAdvise)

	srv.Tool("task.recalc").
		Description("Recalculate and store priority scores for active tasks").
		Handler(t.taskRecalc)
}

func (t *toolSet) taskCreate(ctx context.Context, input taskCreateInput) (taskCreateOutput, error) {
	return timed(ctx, t, "task.create", func(ctx context.Context) (taskCreateOutput, error) {
		if strings.TrimSpace(input.Title) == "" {
			return taskCreateOutput{}, errors.New("title is required")
		}
		due, err := t.c.RequestDefaults.ParseOptionalTime(input.DueDate)
		if err != nil {
			return taskCreateOutput{}, err
		}
		deps, err := parseUUIDs(input.DependsOn)
		if err != nil {
			return taskCreateOutput{}, err
		}

		res, err := t.c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
			UserID:          t.c.UserID,
			Title:           input.Title,
			Description:     input.Description,
			Priority:        input.Priority,
			DurationMinutes: input.Duration,
			DueDate:         due,
			DependencyIDs:   deps,
		})
		if err != nil {
			return taskCreateOutput{}, err
		}
		return taskCreateOutput{TaskID: res.TaskID}, nil
	})
}

func (t *toolSet) taskList(ctx context.Context, input taskListInput) ([]queries.TaskDTO, error) {
	return timed(ctx, t, "task.list", func(ctx context.Context) ([]queries.TaskDTO, error) {
		return t.c.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
			UserID:    t.c.UserID,
			Status:    input.Status,
			Priority:  input.Priority,
			Overdue:   input.Overdue,
			SortBy:    input.SortBy,
			SortOrder: input.SortOrder,
			Limit:     input.Limit,
		})
	})
}

func (t *toolSet) taskGet(ctx context.Context, input taskIDInput) (*queries.TaskDTO, error) {
	return timed(ctx, t, "task.get", func(ctx context.Context) (*queries.TaskDTO, error) {
		id, err := parseUUID(input.TaskID)
		if err != nil {
			return nil, err
		}
		return t.c.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: id, UserID: t.c.UserID})
	})
}

func (t *toolSet) statusTool(action commands.StatusAction) func(context.Context, taskIDInput) (taskStatusOutput, error) {
	return func(ctx context.Context, input taskIDInput) (taskStatusOutput, error) {
		return timed(ctx, t, "task."+string(action), func(ctx context.Context) (taskStatusOutput, error) {
			id, err := parseUUID(input.TaskID)
			if err != nil {
				return taskStatusOutput{}, err
			}
			res, err := t.c.UpdateTaskStatusHandler.Handle(ctx, commands.UpdateTaskStatusCommand{
				TaskID: id,
				UserID: t.c.UserID,
				Action: action,
			})
			if err != nil {
				return taskStatusOutput{}, err
			}
			return taskStatusOutput{TaskID: res.TaskID, Status: res.Status}, nil
		})
	}
}

func (t *toolSet) taskPrioritize(ctx context.Context, input taskPrioritizeInput) (queries.PrioritizationReportDTO, error) {
	return timed(ctx, t, "task.prioritize", func(ctx context.Context) (queries.PrioritizationReportDTO, error) {
		res, err := t.c.PrioritizeTasksHandler.Handle(ctx, queries.PrioritizeTasksQuery{
			UserID:     t.c.UserID,
			Criteria:   input.criteria(),
			ActiveOnly: !input.IncludeAll,
		})
		if err != nil {
			return queries.PrioritizationReportDTO{}, err
		}
		return queries.NewPrioritizationReportDTO(res.PrioritizationResult), nil
	})
}

func (t *toolSet) taskAdvise(ctx context.Context, _ struct{}) ([]queries.PriorityAdjustmentDTO, error) {
	return timed(ctx, t, "task.advise", func(ctx context.Context) ([]queries.PriorityAdjustmentDTO, error) {
		res, err := t.c.AdvisePrioritiesHandler.Handle(ctx, queries.AdvisePrioritiesQuery{UserID: t.c.UserID})
		if err != nil {
			return nil, err
		}
		return queries.NewPriorityAdjustmentDTOs(res.Adjustments), nil
	})
}

func (t *toolSet) taskRecalc(ctx context.Context, input taskPrioritizeInput) (recalcOutput, error) {
	return timed(ctx, t, "task.recalc", func(ctx context.Context) (recalcOutput, error) {
		res, err := t.c.RecalculatePrioritiesHandler.Handle(ctx, commands.RecalculatePrioritiesCommand{
			UserID:   t.c.UserID,
			Criteria: input.criteria(),
		})
		if err != nil {
			return recalcOutput{}, err
		}
		return recalcOutput{UpdatedCount: res.UpdatedCount, AverageScore: res.AverageScore}, nil
	})
}
