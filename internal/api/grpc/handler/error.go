package handler

import (
	"errors"

	"github.com/dtroode/attendance-server/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// handleError translates service errors to a gRPC status whose message is
// the error's taxonomy name.
func handleError(err error) error {
	name := model.ErrorName(err)

	switch {
	case errors.Is(err, model.ErrNotAuthorized), errors.Is(err, model.ErrNotEnrolled):
		return status.Error(codes.PermissionDenied, name)
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, name)
	case errors.Is(err, model.ErrSessionInactive), errors.Is(err, model.ErrExpired), errors.Is(err, model.ErrTokenExpired):
		return status.Error(codes.FailedPrecondition, name)
	case errors.Is(err, model.ErrMalformedToken), errors.Is(err, model.ErrTokenMismatch):
		return status.Error(codes.InvalidArgument, name)
	case errors.Is(err, model.ErrAlreadyMarked):
		return status.Error(codes.AlreadyExists, name)
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
