package model

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNotAuthorized   = errors.New("presenter is not bound to the course")
	ErrSessionInactive = errors.New("session is not active")
	ErrExpired         = errors.New("session expired")
	ErrMalformedToken  = errors.New("malformed token")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenMismatch   = errors.New("token mismatch")
	ErrNotEnrolled     = errors.New("subject is not enrolled in the course")
	ErrAlreadyMarked   = errors.New("attendance already marked")
	ErrCodeTaken       = errors.New("session code already in use")
)

// ErrorName returns the taxonomy name reported to clients, or an empty string
// for errors outside the taxonomy.
func ErrorName(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrNotAuthorized):
		return "NotAuthorized"
	case errors.Is(err, ErrSessionInactive):
		return "SessionInactive"
	case errors.Is(err, ErrExpired):
		return "Expired"
	case errors.Is(err, ErrMalformedToken):
		return "MalformedToken"
	case errors.Is(err, ErrTokenExpired):
		return "TokenExpired"
	case errors.Is(err, ErrTokenMismatch):
		return "TokenMismatch"
	case errors.Is(err, ErrNotEnrolled):
		return "NotEnrolled"
	case errors.Is(err, ErrAlreadyMarked):
		return "AlreadyMarked"
	default:
		return ""
	}
}
