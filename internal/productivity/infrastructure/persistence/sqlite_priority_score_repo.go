package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLitePriorityScoreRepository stores priority scores in SQLite.
type SQLitePriorityScoreRepository struct {
	conn database.Connection
}

// NewSQLitePriorityScoreRepository creates a new repository.
func NewSQLitePriorityScoreRepository(conn database.Connection) *SQLitePriorityScoreRepository {
	return &SQLitePriorityScoreRepository{conn: conn}
}

// Save upserts a priority score.
func (r *SQLitePriorityScoreRepository) Save(ctx context.Context, score task.PriorityScore) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `
		INSERT INTO priority_scores (id, user_id, task_id, score, recommendation, explanation, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, task_id) DO UPDATE SET
			score = excluded.score,
			recommendation = excluded.recommendation,
			explanation = excluded.explanation,
			updated_at = excluded.updated_at`,
		score.ID.String(), score.UserID.String(), score.TaskID.String(), score.Score,
		score.Recommendation, score.Explanation, database.FormatTimestamp(score.UpdatedAt),
	)
	return err
}

// ListByUser returns the user's scores, highest first.
func (r *SQLitePriorityScoreRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]task.PriorityScore, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, task_id, score, recommendation, explanation, updated_at
		FROM priority_scores
		WHERE user_id = ?
		ORDER BY score DESC, task_id`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []task.PriorityScore
	for rows.Next() {
		var (
			score                task.PriorityScore
			id, user, taskID, at string
		)
		if err := rows.Scan(&id, &user, &taskID, &score.Score, &score.Recommendation, &score.Explanation, &at); err != nil {
			return nil, err
		}
		if score.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid score id: %w", err)
		}
		if score.UserID, err = uuid.Parse(user); err != nil {
			return nil, fmt.Errorf("invalid user_id: %w", err)
		}
		if score.TaskID, err = uuid.Parse(taskID); err != nil {
			return nil, fmt.Errorf("invalid task_id: %w", err)
		}
		if score.UpdatedAt, err = database.ParseTimestamp(at); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// DeleteByUser removes stored scores for a user.
func (r *SQLitePriorityScoreRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `DELETE FROM priority_scores WHERE user_id = ?`, userID.String())
	return err
}
