package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MarkStore persists attendance marks.
type MarkStore interface {
	// Create stores a mark. The (session code, subject) uniqueness constraint
	// is the only authority on duplicates: a violation is ErrAlreadyMarked.
	Create(ctx context.Context, mark Mark) error
	ListBySession(ctx context.Context, sessionCode string) ([]Mark, error)
}

// Mark records that a subject was verified present in a session.
type Mark struct {
	ID          uuid.UUID
	SessionCode string
	SubjectID   int64
	MarkedAt    time.Time
}

// AttendanceStatus is the per-subject outcome of a session in a report.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// ReportRow is one enrolled subject's status for one session.
type ReportRow struct {
	SessionCode string
	Date        time.Time
	SubjectID   int64
	Status      AttendanceStatus
}
