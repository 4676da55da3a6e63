package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/attendance-server/internal/code"
	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
)

// Verifier turns a presented (code, token, subject) triple into an
// attendance mark.
type Verifier struct {
	sessions  *Sessions
	marks     model.MarkStore
	directory model.Directory
	publisher model.EventPublisher
	settings  Settings
	logger    *logger.Logger
}

func NewVerifier(
	sessions *Sessions,
	marks model.MarkStore,
	directory model.Directory,
	publisher model.EventPublisher,
	settings Settings,
	logger *logger.Logger,
) *Verifier {
	return &Verifier{
		sessions:  sessions,
		marks:     marks,
		directory: directory,
		publisher: publisher,
		settings:  settings,
		logger:    logger,
	}
}

// Verify runs the checks in a fixed order and reports the first failure.
func (v *Verifier) Verify(ctx context.Context, sessionCode, token string, subjectID int64) (model.Mark, error) {
	_, claimed, err := code.ParseToken(token)
	if err != nil {
		return model.Mark{}, err
	}

	current := code.Bucket(v.settings.now(), v.settings.BucketWidth)
	if claimed != current && claimed != current-1 {
		return model.Mark{}, model.ErrTokenExpired
	}

	session, err := v.sessions.LookupActive(ctx, sessionCode)
	if err != nil {
		return model.Mark{}, err
	}

	if code.DeriveToken(sessionCode, claimed) != token {
		return model.Mark{}, model.ErrTokenMismatch
	}

	enrolled, err := v.directory.IsEnrolled(ctx, subjectID, session.CourseID)
	if err != nil {
		return model.Mark{}, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return model.Mark{}, model.ErrNotEnrolled
	}

	mark := model.Mark{
		ID:          uuid.New(),
		SessionCode: session.Code,
		SubjectID:   subjectID,
		MarkedAt:    v.settings.now(),
	}
	if err := v.marks.Create(ctx, mark); err != nil {
		if errors.Is(err, model.ErrAlreadyMarked) {
			return model.Mark{}, model.ErrAlreadyMarked
		}
		return model.Mark{}, fmt.Errorf("failed to record mark: %w", err)
	}

	v.publisher.Publish(model.Event{
		Kind:        model.EventAttendanceMarked,
		SessionCode: session.Code,
		CourseID:    session.CourseID,
		SubjectID:   subjectID,
		PresenterID: session.PresenterID,
		OccurredAt:  mark.MarkedAt,
	})
	v.logger.Debug("Verifier: marked", "code", session.Code, "subject_id", subjectID)

	return mark, nil
}
