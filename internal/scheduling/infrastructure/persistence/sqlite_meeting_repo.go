package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/felixgeelhaar/execassist/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const meetingColumns = `id, user_id, title, start_time, end_time, status, source, external_id, created_at, updated_at`

// SQLiteMeetingRepository implements domain.MeetingRepository using SQLite.
type SQLiteMeetingRepository struct {
	conn database.Connection
}

// NewSQLiteMeetingRepository creates a new SQLite meeting repository.
func NewSQLiteMeetingRepository(conn database.Connection) *SQLiteMeetingRepository {
	return &SQLiteMeetingRepository{conn: conn}
}

// Save stores the meeting snapshot, replacing any previous snapshot with
// the same id.
func (r *SQLiteMeetingRepository) Save(ctx context.Context, m domain.Meeting) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `INSERT INTO meetings (`+meetingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		m.ID().String(), m.UserID().String(), m.Title(),
		database.FormatTimestamp(m.DateRange().Start()), database.FormatTimestamp(m.DateRange().End()),
		string(m.Status()), m.Source(), m.ExternalID(),
		database.FormatTimestamp(m.CreatedAt()), database.FormatTimestamp(m.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to save meeting: %w", err)
	}
	return nil
}

// FindByID retrieves a meeting by its ID.
func (r *SQLiteMeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Meeting, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	m, err := scanSQLiteMeeting(exec.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return domain.Meeting{}, domain.ErrMeetingNotFound
		}
		return domain.Meeting{}, err
	}
	return m, nil
}

// FindInRange returns the user's meetings overlapping [start, end).
func (r *SQLiteMeetingRepository) FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.Meeting, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+meetingColumns+` FROM meetings
		WHERE user_id = ? AND start_time < ? AND end_time > ?
		ORDER BY start_time, id`,
		userID.String(), database.FormatTimestamp(end), database.FormatTimestamp(start),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		m, err := scanSQLiteMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func scanSQLiteMeeting(s database.Row) (domain.Meeting, error) {
	var (
		id, userID, title, status, source, externalID string
		start, end, createdAt, updatedAt              string
	)
	if err := s.Scan(&id, &userID, &title, &start, &end, &status, &source, &externalID, &createdAt, &updatedAt); err != nil {
		return domain.Meeting{}, err
	}

	row := meetingRow{Title: title, Status: status, Source: source, ExternalID: externalID}
	var err error
	if row.ID, err = uuid.Parse(id); err != nil {
		return domain.Meeting{}, fmt.Errorf("invalid meeting id: %w", err)
	}
	if row.UserID, err = uuid.Parse(userID); err != nil {
		return domain.Meeting{}, fmt.Errorf("invalid user_id: %w", err)
	}
	if row.Start, err = database.ParseTimestamp(start); err != nil {
		return domain.Meeting{}, err
	}
	if row.End, err = database.ParseTimestamp(end); err != nil {
		return domain.Meeting{}, err
	}
	if row.CreatedAt, err = database.ParseTimestamp(createdAt); err != nil {
		return domain.Meeting{}, err
	}
	if row.UpdatedAt, err = database.ParseTimestamp(updatedAt); err != nil {
		return domain.Meeting{}, err
	}
	return row.toMeeting()
}
