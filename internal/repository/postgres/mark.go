package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/attendance-server/internal/model"
)

var _ model.MarkStore = (*MarkRepository)(nil)

type MarkRepository struct {
	db *Connection
}

func NewMarkRepository(db *Connection) *MarkRepository {
	return &MarkRepository{
		db: db,
	}
}

func (r *MarkRepository) Create(ctx context.Context, mark model.Mark) error {
	const query = `
		INSERT INTO attendance_marks (id, session_code, subject_id, marked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_code, subject_id) DO NOTHING`

	cmd, err := r.db.Exec(ctx, query, mark.ID, mark.SessionCode, mark.SubjectID, mark.MarkedAt)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to insert mark: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrAlreadyMarked
	}
	return nil
}

func (r *MarkRepository) ListBySession(ctx context.Context, sessionCode string) ([]model.Mark, error) {
	query := `
		SELECT id, session_code, subject_id, marked_at
		FROM attendance_marks
		WHERE session_code = $1
		ORDER BY marked_at, subject_id`

	rows, err := r.db.Query(ctx, query, sessionCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []model.Mark
	for rows.Next() {
		var m model.Mark
		if err := rows.Scan(&m.ID, &m.SessionCode, &m.SubjectID, &m.MarkedAt); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return marks, nil
}
