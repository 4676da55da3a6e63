package handler

import "time"

type OpenSessionRequest struct {
	CourseID    int64 `json:"course_id"`
	PresenterID int64 `json:"presenter_id"`
}

type OpenSessionResponse struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

type CloseSessionRequest struct {
	Code string `json:"code"`
}

type CloseSessionResponse struct {
	OK bool `json:"ok"`
}

type VerifyRequest struct {
	Code      string `json:"code"`
	Token     string `json:"token"`
	SubjectID int64  `json:"subject_id"`
}

type VerifyResponse struct {
	OK       bool      `json:"ok"`
	MarkedAt time.Time `json:"marked_at"`
}

type RosterRequest struct {
	Code string `json:"code"`
}

type RosterEntry struct {
	SubjectID int64     `json:"subject_id"`
	MarkedAt  time.Time `json:"marked_at"`
}

type RosterResponse struct {
	Count    int           `json:"count"`
	Subjects []RosterEntry `json:"subjects"`
}

type CurrentTokenRequest struct {
	Code string `json:"code"`
}

type CurrentTokenResponse struct {
	Token      string    `json:"token"`
	Bucket     int64     `json:"bucket"`
	ValidUntil time.Time `json:"valid_until"`
}

type CourseReportRequest struct {
	CourseID int64 `json:"course_id"`
}

type ReportRow struct {
	SessionCode string `json:"session_code"`
	Date        string `json:"date"`
	SubjectID   int64  `json:"subject_id"`
	Status      string `json:"status"`
}

type CourseReportResponse struct {
	Rows []ReportRow `json:"rows"`
}
