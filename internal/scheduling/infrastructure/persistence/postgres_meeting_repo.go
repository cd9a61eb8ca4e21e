package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PostgresMeetingRepository implements domain.MeetingRepository using PostgreSQL.
type PostgresMeetingRepository struct {
	conn database.Connection
}

// NewPostgresMeetingRepository creates a new PostgreSQL meeting repository.
func NewPostgresMeetingRepository(conn database.Connection) *PostgresMeetingRepository {
	return &PostgresMeetingRepository{conn: conn}
}

// Save stores the meeting snapshot, replacing any previous snapshot with
// the same id.
func (r *PostgresMeetingRepository) Save(ctx context.Context, m domain.Meeting) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `INSERT INTO meetings (`+meetingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`,
		m.ID(), m.UserID(), m.Title(), m.DateRange().Start(), m.DateRange().End(),
		string(m.Status()), m.Source(), m.ExternalID(), m.CreatedAt(), m.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save meeting: %w", err)
	}
	return nil
}

// FindByID retrieves a meeting by its ID.
func (r *PostgresMeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Meeting, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	m, err := scanPostgresMeeting(exec.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return domain.Meeting{}, domain.ErrMeetingNotFound
		}
		return domain.Meeting{}, err
	}
	return m, nil
}

// FindInRange returns the user's meetings overlapping [start, end).
func (r *PostgresMeetingRepository) FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.Meeting, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+meetingColumns+` FROM meetings
		WHERE user_id = $1 AND start_time < $2 AND end_time > $3
		ORDER BY start_time, id`,
		userID, end, start,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		m, err := scanPostgresMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func scanPostgresMeeting(s database.Row) (domain.Meeting, error) {
	var row meetingRow
	if err := s.Scan(&row.ID, &row.UserID, &row.Title, &row.Start, &row.End, &row.Status,
		&row.Source, &row.ExternalID, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return domain.Meeting{}, err
	}
	return row.toMeeting()
}
