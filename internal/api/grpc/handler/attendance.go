package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
)

const reportDateLayout = "2006-01-02"

var errNoCaller = errors.New("no authenticated caller")

// SessionService manages attendance sessions.
type SessionService interface {
	Open(ctx context.Context, courseID, presenterID int64) (model.Session, error)
	Close(ctx context.Context, sessionCode string) error
	Get(ctx context.Context, sessionCode string) (model.Session, error)
	Roster(ctx context.Context, sessionCode string) ([]model.Mark, error)
	CurrentToken(ctx context.Context, sessionCode string) (model.TokenInfo, error)
}

// VerifyService records attendance marks.
type VerifyService interface {
	Verify(ctx context.Context, sessionCode, token string, subjectID int64) (model.Mark, error)
}

// ReportService builds course attendance reports.
type ReportService interface {
	CourseReport(ctx context.Context, presenterID, courseID int64) ([]model.ReportRow, error)
}

// Attendance handles gRPC endpoints for attendance sessions.
type Attendance struct {
	sessions       SessionService
	verifier       VerifyService
	reports        ReportService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAttendance creates a new Attendance handler.
func NewAttendance(
	sessions SessionService,
	verifier VerifyService,
	reports ReportService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Attendance {
	return &Attendance{
		sessions:       sessions,
		verifier:       verifier,
		reports:        reports,
		contextManager: contextManager,
		logger:         logger,
	}
}

// OpenSession starts a session on behalf of the calling presenter.
func (h *Attendance) OpenSession(ctx context.Context, req *OpenSessionRequest) (*OpenSessionResponse, error) {
	callerID, err := h.caller(ctx, req.PresenterID)
	if err != nil {
		return nil, err
	}
	if req.CourseID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "course_id is required")
	}

	session, err := h.sessions.Open(ctx, req.CourseID, callerID)
	if err != nil {
		h.logError("open session", err, "course_id", req.CourseID, "presenter_id", callerID)
		return nil, handleError(err)
	}

	return &OpenSessionResponse{Code: session.Code, CreatedAt: session.CreatedAt}, nil
}

// CloseSession deactivates a session owned by the caller.
func (h *Attendance) CloseSession(ctx context.Context, req *CloseSessionRequest) (*CloseSessionResponse, error) {
	if _, err := h.ownedSession(ctx, req.Code); err != nil {
		return nil, err
	}

	if err := h.sessions.Close(ctx, req.Code); err != nil {
		h.logError("close session", err, "code", req.Code)
		return nil, handleError(err)
	}

	return &CloseSessionResponse{OK: true}, nil
}

// Verify marks the calling subject present.
func (h *Attendance) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error) {
	callerID, err := h.caller(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	mark, err := h.verifier.Verify(ctx, req.Code, req.Token, callerID)
	if err != nil {
		h.logError("verify", err, "code", req.Code, "subject_id", callerID)
		return nil, handleError(err)
	}

	return &VerifyResponse{OK: true, MarkedAt: mark.MarkedAt}, nil
}

// Roster lists the subjects marked in a session owned by the caller.
func (h *Attendance) Roster(ctx context.Context, req *RosterRequest) (*RosterResponse, error) {
	if _, err := h.ownedSession(ctx, req.Code); err != nil {
		return nil, err
	}

	marks, err := h.sessions.Roster(ctx, req.Code)
	if err != nil {
		h.logError("roster", err, "code", req.Code)
		return nil, handleError(err)
	}

	entries := make([]RosterEntry, 0, len(marks))
	for _, m := range marks {
		entries = append(entries, RosterEntry{SubjectID: m.SubjectID, MarkedAt: m.MarkedAt})
	}

	return &RosterResponse{Count: len(entries), Subjects: entries}, nil
}

// CurrentToken returns the token the presenter should display now.
func (h *Attendance) CurrentToken(ctx context.Context, req *CurrentTokenRequest) (*CurrentTokenResponse, error) {
	if _, err := h.ownedSession(ctx, req.Code); err != nil {
		return nil, err
	}

	info, err := h.sessions.CurrentToken(ctx, req.Code)
	if err != nil {
		h.logError("current token", err, "code", req.Code)
		return nil, handleError(err)
	}

	return &CurrentTokenResponse{Token: info.Token, Bucket: info.Bucket, ValidUntil: info.ValidUntil}, nil
}

// CourseReport lists every enrolled subject's status in every session of a
// course taught by the caller.
func (h *Attendance) CourseReport(ctx context.Context, req *CourseReportRequest) (*CourseReportResponse, error) {
	callerID, err := h.caller(ctx, 0)
	if err != nil {
		return nil, err
	}

	rows, err := h.reports.CourseReport(ctx, callerID, req.CourseID)
	if err != nil {
		h.logError("course report", err, "course_id", req.CourseID, "presenter_id", callerID)
		return nil, handleError(err)
	}

	out := make([]ReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ReportRow{
			SessionCode: r.SessionCode,
			Date:        r.Date.Format(reportDateLayout),
			SubjectID:   r.SubjectID,
			Status:      string(r.Status),
		})
	}

	return &CourseReportResponse{Rows: out}, nil
}

// caller returns the authenticated subject. A non-zero claimed ID must match
// it.
func (h *Attendance) caller(ctx context.Context, claimed int64) (int64, error) {
	callerID, ok := h.contextManager.GetSubjectIDFromContext(ctx)
	if !ok {
		return 0, status.Error(codes.Unauthenticated, errNoCaller.Error())
	}
	if claimed != 0 && claimed != callerID {
		h.logger.Warn("Attendance handler: identity mismatch", "caller_id", callerID, "claimed_id", claimed)
		return 0, handleError(model.ErrNotAuthorized)
	}
	return callerID, nil
}

func (h *Attendance) ownedSession(ctx context.Context, sessionCode string) (model.Session, error) {
	callerID, err := h.caller(ctx, 0)
	if err != nil {
		return model.Session{}, err
	}

	session, err := h.sessions.Get(ctx, sessionCode)
	if err != nil {
		h.logError("get session", err, "code", sessionCode)
		return model.Session{}, handleError(err)
	}
	if session.PresenterID != callerID {
		return model.Session{}, handleError(model.ErrNotAuthorized)
	}

	return session, nil
}

// logError logs unexpected failures. Protocol outcomes are left to the
// logging interceptor.
func (h *Attendance) logError(op string, err error, args ...any) {
	if model.ErrorName(err) != "" {
		return
	}
	h.logger.Error("Attendance handler: "+op+" failed", append(args, "error", err)...)
}
