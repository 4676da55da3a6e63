package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/attendance-server/internal/code"
	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
)

// SessionArchiver stores the final roster of a session once it stops
// accepting marks.
type SessionArchiver interface {
	Archive(ctx context.Context, session model.Session) error
}

// Sessions owns the attendance session lifecycle.
type Sessions struct {
	store     model.SessionStore
	marks     model.MarkStore
	directory model.Directory
	publisher model.EventPublisher
	archiver  SessionArchiver
	settings  Settings
	logger    *logger.Logger
}

func NewSessions(
	store model.SessionStore,
	marks model.MarkStore,
	directory model.Directory,
	publisher model.EventPublisher,
	settings Settings,
	logger *logger.Logger,
) *Sessions {
	return &Sessions{
		store:     store,
		marks:     marks,
		directory: directory,
		publisher: publisher,
		settings:  settings,
		logger:    logger,
	}
}

// SetArchiver enables roster archiving on close and expiry.
func (s *Sessions) SetArchiver(archiver SessionArchiver) {
	s.archiver = archiver
}

// Open starts a session for the course. Any session of the course that is
// still active is closed first.
func (s *Sessions) Open(ctx context.Context, courseID, presenterID int64) (model.Session, error) {
	ok, err := s.directory.TeachesCourse(ctx, presenterID, courseID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to check course binding: %w", err)
	}
	if !ok {
		return model.Session{}, model.ErrNotAuthorized
	}

	for attempt := 1; attempt <= openAttempts; attempt++ {
		sessionCode, err := code.NewSessionCode()
		if err != nil {
			return model.Session{}, fmt.Errorf("failed to generate session code: %w", err)
		}

		session := model.Session{
			Code:        sessionCode,
			CourseID:    courseID,
			PresenterID: presenterID,
			Active:      true,
			CreatedAt:   s.settings.now(),
		}

		superseded, err := s.store.Open(ctx, session)
		if errors.Is(err, model.ErrCodeTaken) {
			s.logger.Warn("Sessions: code collision, retrying", "attempt", attempt)
			continue
		}
		if err != nil {
			return model.Session{}, fmt.Errorf("failed to open session: %w", err)
		}

		for _, old := range superseded {
			s.logger.Info("Sessions: superseded active session", "code", old, "course_id", courseID)
			s.closed(model.Session{Code: old, CourseID: courseID, PresenterID: presenterID}, session.CreatedAt)
		}

		s.publisher.Publish(model.Event{
			Kind:        model.EventSessionOpened,
			SessionCode: session.Code,
			CourseID:    courseID,
			PresenterID: presenterID,
			OccurredAt:  session.CreatedAt,
		})
		s.logger.Info("Sessions: opened", "code", session.Code, "course_id", courseID, "presenter_id", presenterID)

		return session, nil
	}

	return model.Session{}, fmt.Errorf("failed to allocate session code after %d attempts: %w", openAttempts, model.ErrCodeTaken)
}

// Close deactivates the session. Closing an inactive session is a no-op.
func (s *Sessions) Close(ctx context.Context, sessionCode string) error {
	session, err := s.store.GetByCode(ctx, sessionCode)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	now := s.settings.now()
	changed, err := s.store.Deactivate(ctx, sessionCode, now)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if changed {
		s.logger.Info("Sessions: closed", "code", sessionCode)
		s.closed(session, now)
	}

	return nil
}

// Get returns the stored session without applying expiry.
func (s *Sessions) Get(ctx context.Context, sessionCode string) (model.Session, error) {
	session, err := s.store.GetByCode(ctx, sessionCode)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// LookupActive returns the session if it still accepts marks. A session past
// its lifetime is deactivated here and reported as ErrExpired.
func (s *Sessions) LookupActive(ctx context.Context, sessionCode string) (model.Session, error) {
	session, err := s.store.GetByCode(ctx, sessionCode)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	now := s.settings.now()
	switch model.NextState(session, now, s.settings.MaxLifetime) {
	case model.StateActive:
		return session, nil
	case model.StateExpired:
		changed, err := s.store.Deactivate(ctx, sessionCode, now)
		if err != nil {
			return model.Session{}, fmt.Errorf("failed to expire session: %w", err)
		}
		if changed {
			s.logger.Info("Sessions: expired", "code", sessionCode, "age", now.Sub(session.CreatedAt))
			s.closed(session, now)
		}
		return model.Session{}, model.ErrExpired
	default:
		return model.Session{}, model.ErrSessionInactive
	}
}

// CurrentToken returns the token a presenter should display for the session
// right now.
func (s *Sessions) CurrentToken(ctx context.Context, sessionCode string) (model.TokenInfo, error) {
	session, err := s.LookupActive(ctx, sessionCode)
	if err != nil {
		return model.TokenInfo{}, err
	}

	bucket := code.Bucket(s.settings.now(), s.settings.BucketWidth)
	return model.TokenInfo{
		Token:      code.DeriveToken(session.Code, bucket),
		Bucket:     bucket,
		ValidUntil: code.BucketEnd(bucket+1, s.settings.BucketWidth),
	}, nil
}

// Roster returns the marks recorded for the session.
func (s *Sessions) Roster(ctx context.Context, sessionCode string) ([]model.Mark, error) {
	if _, err := s.store.GetByCode(ctx, sessionCode); err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	marks, err := s.marks.ListBySession(ctx, sessionCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}
	return marks, nil
}

func (s *Sessions) closed(session model.Session, at time.Time) {
	s.publisher.Publish(model.Event{
		Kind:        model.EventSessionClosed,
		SessionCode: session.Code,
		CourseID:    session.CourseID,
		PresenterID: session.PresenterID,
		OccurredAt:  at,
	})

	if s.archiver == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := s.archiver.Archive(ctx, session); err != nil {
			s.logger.Error("Sessions: failed to archive roster", "code", session.Code, "error", err)
		}
	}()
}
