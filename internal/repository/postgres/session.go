package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/attendance-server/internal/model"
)

const sessionsPrimaryKey = "attendance_sessions_pkey"

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

func (r *SessionRepository) Open(ctx context.Context, session model.Session) ([]string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const supersede = `
		UPDATE attendance_sessions
		SET active = FALSE, closed_at = $2
		WHERE course_id = $1 AND active
		RETURNING code`

	rows, err := tx.Query(ctx, supersede, session.CourseID, session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to supersede sessions: %w", err)
	}
	superseded, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read superseded sessions: %w", err)
	}

	const insert = `
		INSERT INTO attendance_sessions (code, course_id, presenter_id, active, created_at)
		VALUES ($1, $2, $3, TRUE, $4)`

	_, err = tx.Exec(ctx, insert, session.Code, session.CourseID, session.PresenterID, session.CreatedAt)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgUniqueViolation && constraint == sessionsPrimaryKey {
			return nil, model.ErrCodeTaken
		}
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}

	return superseded, nil
}

func (r *SessionRepository) GetByCode(ctx context.Context, code string) (model.Session, error) {
	query := `
		SELECT code, course_id, presenter_id, active, created_at, closed_at
		FROM attendance_sessions
		WHERE code = $1`

	var s model.Session
	err := r.db.QueryRow(ctx, query, code).Scan(
		&s.Code, &s.CourseID, &s.PresenterID, &s.Active, &s.CreatedAt, &s.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, err
	}

	return s, nil
}

func (r *SessionRepository) Deactivate(ctx context.Context, code string, at time.Time) (bool, error) {
	const query = `UPDATE attendance_sessions SET active = FALSE, closed_at = $2 WHERE code = $1 AND active`
	cmd, err := r.db.Exec(ctx, query, code, at)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	err = r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM attendance_sessions WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, model.ErrNotFound
	}
	return false, nil
}

func (r *SessionRepository) ListByCourse(ctx context.Context, courseID int64) ([]model.Session, error) {
	query := `
		SELECT code, course_id, presenter_id, active, created_at, closed_at
		FROM attendance_sessions
		WHERE course_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.Code, &s.CourseID, &s.PresenterID, &s.Active, &s.CreatedAt, &s.ClosedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
