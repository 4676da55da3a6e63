package middleware

import (
	"context"
	"time"

	"github.com/dtroode/attendance-server/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Logging is a unary interceptor that logs gRPC calls and their outcome.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method name, duration and status for each unary call.
// Protocol rejections are expected traffic and log at info; anything else
// that fails logs at error.
func (l *Logging) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	duration := time.Since(start)

	statusCode := codes.OK
	var reason string
	if err != nil {
		if st, ok := status.FromError(err); ok {
			statusCode = st.Code()
			reason = st.Message()
		} else {
			statusCode = codes.Internal
			reason = err.Error()
		}
	}

	args := []any{
		"method", info.FullMethod,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode.String(),
	}

	switch {
	case err == nil:
		l.logger.Info("gRPC: call completed", args...)
	case isRejection(statusCode):
		l.logger.Info("gRPC: call rejected", append(args, "reason", reason)...)
	default:
		l.logger.Error("gRPC: call failed", append(args, "error", reason)...)
	}

	return resp, err
}

func isRejection(code codes.Code) bool {
	switch code {
	case codes.Unauthenticated, codes.PermissionDenied, codes.NotFound,
		codes.FailedPrecondition, codes.InvalidArgument, codes.AlreadyExists:
		return true
	default:
		return false
	}
}
