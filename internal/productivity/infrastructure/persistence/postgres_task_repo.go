package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const postgresTaskColumns = `id, user_id, title, description, status, priority, estimated_minutes,
	due_date, completed_at, dependency_ids, version, created_at, updated_at`

// PostgresTaskRepository implements task.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	conn database.Connection
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(conn database.Connection) *PostgresTaskRepository {
	return &PostgresTaskRepository{conn: conn}
}

// Save upserts a task with an optimistic version check.
func (r *PostgresTaskRepository) Save(ctx context.Context, t *task.Task) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := rowFromTask(t)

	var version int
	err := exec.QueryRow(ctx, `
		INSERT INTO tasks (`+postgresTaskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::uuid[], $11 + 1, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			estimated_minutes = EXCLUDED.estimated_minutes,
			due_date = EXCLUDED.due_date,
			completed_at = EXCLUDED.completed_at,
			dependency_ids = EXCLUDED.dependency_ids,
			version = tasks.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE tasks.version = $11
		RETURNING version`,
		row.ID, row.UserID, row.Title, row.Description, row.Status, row.Priority, row.EstimatedMinutes,
		row.DueDate, row.CompletedAt, uuidStrings(row.DependencyIDs), row.Version,
		row.CreatedAt.UTC(), row.UpdatedAt.UTC(),
	).Scan(&version)
	if err != nil {
		if database.IsNoRows(err) {
			return ErrOptimisticLocking
		}
		return fmt.Errorf("failed to save task: %w", err)
	}

	t.IncrementVersion()
	return nil
}

// FindByID retrieves a task by its ID.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	t, err := scanPostgresTask(exec.QueryRow(ctx, `SELECT `+postgresTaskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// FindByUserID retrieves all tasks for a user in creation order.
func (r *PostgresTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.query(ctx, `SELECT `+postgresTaskColumns+` FROM tasks
		WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

// FindActive retrieves pending and in-progress tasks for a user.
func (r *PostgresTaskRepository) FindActive(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.query(ctx, `SELECT `+postgresTaskColumns+` FROM tasks
		WHERE user_id = $1 AND status IN ('pending', 'in-progress') ORDER BY created_at, id`, userID)
}

// Delete removes a task.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) query(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanPostgresTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanPostgresTask(s database.Row) (*task.Task, error) {
	var (
		row       taskRow
		estimated *int32
		deps      []string
		created   time.Time
		updated   time.Time
	)
	if err := s.Scan(&row.ID, &row.UserID, &row.Title, &row.Description, &row.Status, &row.Priority, &estimated,
		&row.DueDate, &row.CompletedAt, &deps, &row.Version, &created, &updated); err != nil {
		return nil, err
	}
	if estimated != nil {
		minutes := int64(*estimated)
		row.EstimatedMinutes = &minutes
	}
	row.CreatedAt = created.UTC()
	row.UpdatedAt = updated.UTC()

	var err error
	if row.DependencyIDs, err = parseUUIDs(deps); err != nil {
		return nil, err
	}
	return row.toTask()
}
