package model

import "context"

// ContextManager carries the authenticated caller through request contexts.
type ContextManager interface {
	SetSubjectIDToContext(ctx context.Context, subjectID int64) context.Context
	GetSubjectIDFromContext(ctx context.Context) (int64, bool)
}
