package service

import (
	"context"

	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
)

// TokenService resolves bearer tokens issued by the campus auth service.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// GetUserID returns the subject the token was issued to.
func (s *TokenService) GetUserID(_ context.Context, token string) (int64, error) {
	subjectID, err := s.manager.ParseAccessToken(token)
	if err != nil {
		s.logger.Debug("TokenService: rejected token", "error", err)
		return 0, err
	}
	return subjectID, nil
}
