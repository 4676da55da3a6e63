package model

import (
	"context"
	"time"
)

// SessionStore persists attendance sessions. Sessions are never deleted.
type SessionStore interface {
	// Open inserts an active session and deactivates any other active session
	// of the same course in one step. It returns the codes it deactivated.
	// A code collision is reported as ErrCodeTaken.
	Open(ctx context.Context, session Session) (superseded []string, err error)
	GetByCode(ctx context.Context, code string) (Session, error)
	// Deactivate sets active=false. It reports whether this call changed the
	// state, so concurrent close and lazy expiry agree on a single winner.
	Deactivate(ctx context.Context, code string, at time.Time) (changed bool, err error)
	ListByCourse(ctx context.Context, courseID int64) ([]Session, error)
}

// Session is a bounded-lifetime attendance window bound to one course.
type Session struct {
	Code        string
	CourseID    int64
	PresenterID int64
	Active      bool
	CreatedAt   time.Time
	ClosedAt    *time.Time
}

// SessionState is the observable state of a session at a given instant.
type SessionState int

const (
	// StateActive accepts verifications.
	StateActive SessionState = iota
	// StateExpired is still flagged active but has outlived its lifetime.
	StateExpired
	// StateClosed was deactivated by close or by a previous lazy expiry.
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// NextState is the single transition function of the session state machine.
// Every session read goes through it before the session is used.
func NextState(session Session, now time.Time, maxLifetime time.Duration) SessionState {
	if !session.Active {
		return StateClosed
	}
	if now.Sub(session.CreatedAt) > maxLifetime {
		return StateExpired
	}
	return StateActive
}

// TokenInfo describes the verification token a presenter should display now.
type TokenInfo struct {
	Token      string
	Bucket     int64
	ValidUntil time.Time
}
