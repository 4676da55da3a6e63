package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
)

const csvContentType = "text/csv"

var _ SessionArchiver = (*Archiver)(nil)

// Archiver writes the roster of a finished session to object storage as CSV.
type Archiver struct {
	sessions model.SessionStore
	report   *Report
	storage  model.ArchiveStorage
	logger   *logger.Logger
}

func NewArchiver(sessions model.SessionStore, report *Report, storage model.ArchiveStorage, logger *logger.Logger) *Archiver {
	return &Archiver{sessions: sessions, report: report, storage: storage, logger: logger}
}

// ArchiveKey is the object key of a session's roster.
func ArchiveKey(sessionCode string) string {
	return "sessions/" + sessionCode + ".csv"
}

// Archive stores the roster once. Existing archives are left untouched.
func (a *Archiver) Archive(ctx context.Context, session model.Session) error {
	key := ArchiveKey(session.Code)

	exists, err := a.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check archive: %w", err)
	}
	if exists {
		return nil
	}

	stored, err := a.sessions.GetByCode(ctx, session.Code)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	rows, err := a.report.SessionReport(ctx, stored)
	if err != nil {
		return fmt.Errorf("failed to build roster: %w", err)
	}

	data, err := encodeRoster(stored, rows)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}

	if err := a.storage.Put(ctx, key, data, csvContentType); err != nil {
		return fmt.Errorf("failed to store roster: %w", err)
	}

	a.logger.Info("Archiver: stored roster", "code", session.Code, "key", key, "rows", len(rows))
	return nil
}

func encodeRoster(session model.Session, rows []model.ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	closedAt := ""
	if session.ClosedAt != nil {
		closedAt = session.ClosedAt.UTC().Format(time.RFC3339)
	}

	records := [][]string{{"session_code", "course_id", "opened_at", "closed_at", "subject_id", "status"}}
	for _, row := range rows {
		records = append(records, []string{
			session.Code,
			strconv.FormatInt(session.CourseID, 10),
			session.CreatedAt.UTC().Format(time.RFC3339),
			closedAt,
			strconv.FormatInt(row.SubjectID, 10),
			string(row.Status),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
