package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/execassist/internal/productivity/application/services"
	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/execassist/internal/shared/application"
	"github.com/google/uuid"
)

// RecalculatePrioritiesCommand contains the data needed to refresh scores.
type RecalculatePrioritiesCommand struct {
	UserID   uuid.UUID
	Criteria services.PrioritizationCriteria
}

// RecalculatePrioritiesResult describes the outcome of the scan.
type RecalculatePrioritiesResult struct {
	UpdatedCount int
	AverageScore float64
}

// RecalculatePrioritiesHandler recalculates stored priority scores for
// active tasks. Previous scores for the user are replaced.
type RecalculatePrioritiesHandler struct {
	taskRepo  task.Repository
	scoreRepo task.PriorityScoreRepository
	engine    *services.PriorityEngine
	uow       sharedApplication.UnitOfWork
	clock     sharedApplication.Clock
}

// NewRecalculatePrioritiesHandler creates a new handler.
func NewRecalculatePrioritiesHandler(
	taskRepo task.Repository,
	scoreRepo task.PriorityScoreRepository,
	engine *services.PriorityEngine,
	uow sharedApplication.UnitOfWork,
	clock sharedApplication.Clock,
) *RecalculatePrioritiesHandler {
	if engine == nil {
		engine = services.NewPriorityEngine(services.EngineOptions{})
	}
	return &RecalculatePrioritiesHandler{
		taskRepo:  taskRepo,
		scoreRepo: scoreRepo,
		engine:    engine,
		uow:       uow,
		clock:     clock.OrSystem(),
	}
}

// Handle executes the recalculation.
func (h *RecalculatePrioritiesHandler) Handle(ctx context.Context, cmd RecalculatePrioritiesCommand) (*RecalculatePrioritiesResult, error) {
	var result RecalculatePrioritiesResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		tasks, err := h.taskRepo.FindActive(txCtx, cmd.UserID)
		if err != nil {
			return err
		}

		if err := h.scoreRepo.DeleteByUser(txCtx, cmd.UserID); err != nil {
			return err
		}

		if len(tasks) == 0 {
			return nil
		}

		now := h.clock()
		ranked := h.engine.Prioritize(tasks, cmd.Criteria, now)

		total := 0
		for _, pt := range ranked.PrioritizedTasks {
			if err := h.scoreRepo.Save(txCtx, task.PriorityScore{
				ID:             uuid.New(),
				UserID:         cmd.UserID,
				TaskID:         pt.Task.ID(),
				Score:          pt.Score,
				Recommendation: pt.Recommendation,
				Explanation:    pt.Explanation(),
				UpdatedAt:      now,
			}); err != nil {
				return err
			}
			total += pt.Score
			result.UpdatedCount++
		}

		if result.UpdatedCount > 0 {
			result.AverageScore = float64(total) / float64(result.UpdatedCount)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recalc priorities: %w", err)
	}

	return &result, nil
}
