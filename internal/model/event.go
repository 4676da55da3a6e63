package model

import "time"

// EventKind enumerates domain events pushed to real-time clients.
type EventKind string

const (
	EventSessionOpened    EventKind = "session_opened"
	EventAttendanceMarked EventKind = "attendance_marked"
	EventSessionClosed    EventKind = "session_closed"
)

// Event is a session or attendance state change.
type Event struct {
	Kind        EventKind
	SessionCode string
	CourseID    int64
	SubjectID   int64
	PresenterID int64
	OccurredAt  time.Time
}

// EventPublisher accepts domain events. Publish must not block the caller.
type EventPublisher interface {
	Publish(event Event)
}
