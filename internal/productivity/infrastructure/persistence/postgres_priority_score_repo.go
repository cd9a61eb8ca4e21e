package persistence

import (
	"context"

	"github.com/felixgeelhaar/execassist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PostgresPriorityScoreRepository stores priority scores in PostgreSQL.
type PostgresPriorityScoreRepository struct {
	conn database.Connection
}

// NewPostgresPriorityScoreRepository creates a new repository.
func NewPostgresPriorityScoreRepository(conn database.Connection) *PostgresPriorityScoreRepository {
	return &PostgresPriorityScoreRepository{conn: conn}
}

// Save upserts a priority score.
func (r *PostgresPriorityScoreRepository) Save(ctx context.Context, score task.PriorityScore) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `
		INSERT INTO priority_scores (id, user_id, task_id, score, recommendation, explanation, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, task_id) DO UPDATE SET
			score = EXCLUDED.score,
			recommendation = EXCLUDED.recommendation,
			explanation = EXCLUDED.explanation,
			updated_at = EXCLUDED.updated_at`,
		score.ID, score.UserID, score.TaskID, score.Score,
		score.Recommendation, score.Explanation, score.UpdatedAt.UTC(),
	)
	return err
}

// ListByUser returns the user's scores, highest first.
func (r *PostgresPriorityScoreRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]task.PriorityScore, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, task_id, score, recommendation, explanation, updated_at
		FROM priority_scores
		WHERE user_id = $1
		ORDER BY score DESC, task_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []task.PriorityScore
	for rows.Next() {
		var score task.PriorityScore
		if err := rows.Scan(
			&score.ID,
			&score.UserID,
			&score.TaskID,
			&score.Score,
			&score.Recommendation,
			&score.Explanation,
			&score.UpdatedAt,
		); err != nil {
			return nil, err
		}
		score.UpdatedAt = score.UpdatedAt.UTC()
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// DeleteByUser removes stored scores for a user.
func (r *PostgresPriorityScoreRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `DELETE FROM priority_scores WHERE user_id = $1`, userID)
	return err
}
