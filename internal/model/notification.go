package model

import (
	"context"
	"time"
)

// NotificationSink delivers a persisted notification to one user.
type NotificationSink interface {
	Notify(ctx context.Context, subjectID int64, notification Notification) error
}

// Notification is a user-facing message about an attendance change.
type Notification struct {
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
