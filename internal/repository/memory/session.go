package memory

import (
	"context"
	"time"

	"github.com/dtroode/attendance-server/internal/model"
)

type sessionRow struct {
	session model.Session
}

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Open(_ context.Context, session model.Session) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.sessions[session.Code]; ok {
		return nil, model.ErrCodeTaken
	}

	var superseded []string
	for _, code := range r.db.order {
		row := r.db.sessions[code]
		if row.session.CourseID == session.CourseID && row.session.Active {
			closedAt := session.CreatedAt
			row.session.Active = false
			row.session.ClosedAt = &closedAt
			superseded = append(superseded, code)
		}
	}

	session.Active = true
	session.ClosedAt = nil
	r.db.sessions[session.Code] = &sessionRow{session: session}
	r.db.order = append(r.db.order, session.Code)

	return superseded, nil
}

func (r *SessionRepository) GetByCode(_ context.Context, code string) (model.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.sessions[code]
	if !ok {
		return model.Session{}, model.ErrNotFound
	}
	return row.session, nil
}

func (r *SessionRepository) Deactivate(_ context.Context, code string, at time.Time) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.sessions[code]
	if !ok {
		return false, model.ErrNotFound
	}
	if !row.session.Active {
		return false, nil
	}
	row.session.Active = false
	row.session.ClosedAt = &at
	return true, nil
}

func (r *SessionRepository) ListByCourse(_ context.Context, courseID int64) ([]model.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var sessions []model.Session
	for _, code := range r.db.order {
		if s := r.db.sessions[code].session; s.CourseID == courseID {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}
