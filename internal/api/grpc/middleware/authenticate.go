package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenService resolves the subject ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (int64, error)
}

// Authenticate validates bearer tokens and injects the subject ID into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header, validates the token and returns
// a context carrying the caller.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
	}

	subjectID, authErr := m.authenticate(ctx, tokenString)
	if authErr != nil {
		m.logger.Debug("Authenticate: rejected call", "error", authErr)
		return nil, status.Error(codes.Unauthenticated, authErr.Error())
	}

	return m.contextManager.SetSubjectIDToContext(ctx, subjectID), nil
}

func (m *Authenticate) authenticate(ctx context.Context, tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, errMissingToken
	}

	subjectID, err := m.tokenService.GetUserID(ctx, tokenString)
	if err != nil {
		return 0, errInvalidToken
	}

	if subjectID <= 0 {
		return 0, errInvalidToken
	}

	return subjectID, nil
}
