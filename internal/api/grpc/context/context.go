package context

import (
	"context"
	"strconv"

	"google.golang.org/grpc/metadata"
)

// subjectIDKey is the metadata key holding the authenticated subject ID.
const (
	subjectIDKey string = "x-subject-id"
)

// Manager represents a gRPC context manager for subject ID operations.
// It stores the authenticated caller in incoming gRPC metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSubjectIDToContext sets the subject ID in the incoming gRPC metadata and
// returns the new context.
func (m *Manager) SetSubjectIDToContext(ctx context.Context, subjectID int64) context.Context {
	value := strconv.FormatInt(subjectID, 10)

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{subjectIDKey: value})
	} else {
		md = md.Copy()
		md.Set(subjectIDKey, value)
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetSubjectIDFromContext retrieves the subject ID from gRPC context metadata.
//
// Returns the subject ID and a boolean indicating if a valid ID was found.
func (m *Manager) GetSubjectIDFromContext(ctx context.Context) (int64, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return 0, false
	}

	values := md.Get(subjectIDKey)
	if len(values) == 0 {
		return 0, false
	}

	subjectID, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil || subjectID <= 0 {
		return 0, false
	}

	return subjectID, true
}
