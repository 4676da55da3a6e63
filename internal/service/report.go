package service

import (
	"context"
	"fmt"

	"github.com/dtroode/attendance-server/internal/model"
)

// Report builds attendance reports over closed and open sessions.
type Report struct {
	sessions  model.SessionStore
	marks     model.MarkStore
	directory model.Directory
}

func NewReport(sessions model.SessionStore, marks model.MarkStore, directory model.Directory) *Report {
	return &Report{sessions: sessions, marks: marks, directory: directory}
}

// CourseReport lists every enrolled subject's status in every session of the
// course, oldest session first.
func (r *Report) CourseReport(ctx context.Context, presenterID, courseID int64) ([]model.ReportRow, error) {
	ok, err := r.directory.TeachesCourse(ctx, presenterID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course binding: %w", err)
	}
	if !ok {
		return nil, model.ErrNotAuthorized
	}

	enrolled, err := r.directory.EnrolledSubjects(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled subjects: %w", err)
	}

	sessions, err := r.sessions.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var rows []model.ReportRow
	for _, session := range sessions {
		sessionRows, err := r.sessionRows(ctx, session, enrolled)
		if err != nil {
			return nil, err
		}
		rows = append(rows, sessionRows...)
	}

	return rows, nil
}

// SessionReport lists every enrolled subject's status in one session.
func (r *Report) SessionReport(ctx context.Context, session model.Session) ([]model.ReportRow, error) {
	enrolled, err := r.directory.EnrolledSubjects(ctx, session.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled subjects: %w", err)
	}
	return r.sessionRows(ctx, session, enrolled)
}

func (r *Report) sessionRows(ctx context.Context, session model.Session, enrolled []int64) ([]model.ReportRow, error) {
	marks, err := r.marks.ListBySession(ctx, session.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}

	present := make(map[int64]struct{}, len(marks))
	for _, m := range marks {
		present[m.SubjectID] = struct{}{}
	}

	rows := make([]model.ReportRow, 0, len(enrolled))
	for _, subjectID := range enrolled {
		status := model.StatusAbsent
		if _, ok := present[subjectID]; ok {
			status = model.StatusPresent
		}
		rows = append(rows, model.ReportRow{
			SessionCode: session.Code,
			Date:        session.CreatedAt,
			SubjectID:   subjectID,
			Status:      status,
		})
	}

	return rows, nil
}
