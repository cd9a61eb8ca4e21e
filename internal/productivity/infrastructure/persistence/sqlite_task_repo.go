package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const sqliteTaskColumns = `id, user_id, title, description, status, priority, estimated_minutes,
	due_date, completed_at, dependency_ids, version, created_at, updated_at`

// SQLiteTaskRepository implements task.Repository using SQLite.
type SQLiteTaskRepository struct {
	conn database.Connection
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(conn database.Connection) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{conn: conn}
}

// Save inserts or updates a task. Updates are guarded by the aggregate
// version; a stale task yields ErrOptimisticLocking.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t *task.Task) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := rowFromTask(t)

	deps, err := json.Marshal(uuidStrings(row.DependencyIDs))
	if err != nil {
		return fmt.Errorf("failed to encode dependencies: %w", err)
	}

	result, err := exec.Exec(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, status = ?, priority = ?, estimated_minutes = ?,
			due_date = ?, completed_at = ?, dependency_ids = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		row.Title, row.Description, row.Status, row.Priority, row.EstimatedMinutes,
		database.NullableTimestamp(row.DueDate), database.NullableTimestamp(row.CompletedAt), string(deps),
		database.FormatTimestamp(row.UpdatedAt),
		row.ID.String(), row.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 1 {
		t.IncrementVersion()
		return nil
	}

	var existing int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ?`, row.ID.String()).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return ErrOptimisticLocking
	}

	_, err = exec.Exec(ctx, `INSERT INTO tasks (`+sqliteTaskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID.String(), row.UserID.String(), row.Title, row.Description, row.Status, row.Priority,
		row.EstimatedMinutes, database.NullableTimestamp(row.DueDate), database.NullableTimestamp(row.CompletedAt),
		string(deps), row.Version+1, database.FormatTimestamp(row.CreatedAt), database.FormatTimestamp(row.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	t.IncrementVersion()
	return nil
}

// FindByID retrieves a task by its ID.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	t, err := scanSQLiteTask(exec.QueryRow(ctx, `SELECT `+sqliteTaskColumns+` FROM tasks WHERE id = ?`, id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// FindByUserID retrieves all tasks for a user in creation order.
func (r *SQLiteTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.query(ctx, `SELECT `+sqliteTaskColumns+` FROM tasks
		WHERE user_id = ? ORDER BY created_at, id`, userID.String())
}

// FindActive retrieves pending and in-progress tasks for a user.
func (r *SQLiteTaskRepository) FindActive(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.query(ctx, `SELECT `+sqliteTaskColumns+` FROM tasks
		WHERE user_id = ? AND status IN ('pending', 'in-progress') ORDER BY created_at, id`, userID.String())
}

// Delete removes a task.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *SQLiteTaskRepository) query(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanSQLiteTask(s database.Row) (*task.Task, error) {
	var (
		id, userID, deps     string
		estimated            sql.NullInt64
		dueDate, completedAt sql.NullString
		createdAt, updatedAt string
		row                  taskRow
	)
	if err := s.Scan(&id, &userID, &row.Title, &row.Description, &row.Status, &row.Priority, &estimated,
		&dueDate, &completedAt, &deps, &row.Version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if row.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}
	if row.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}
	if estimated.Valid {
		row.EstimatedMinutes = &estimated.Int64
	}
	if row.DueDate, err = parseNullString(dueDate); err != nil {
		return nil, err
	}
	if row.CompletedAt, err = parseNullString(completedAt); err != nil {
		return nil, err
	}
	if row.CreatedAt, err = database.ParseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if row.UpdatedAt, err = database.ParseTimestamp(updatedAt); err != nil {
		return nil, err
	}

	var depStrings []string
	if err := json.Unmarshal([]byte(deps), &depStrings); err != nil {
		return nil, fmt.Errorf("invalid dependency list: %w", err)
	}
	if row.DependencyIDs, err = parseUUIDs(depStrings); err != nil {
		return nil, err
	}

	return row.toTask()
}

func parseNullString(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	return database.ParseNullableTimestamp(&v.String)
}
