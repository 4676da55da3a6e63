package notify

import (
	"context"

	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
)

var _ model.NotificationSink = (*LogSink)(nil)

// LogSink writes notifications to the log. Used when Redis is not configured.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(logger *logger.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(_ context.Context, subjectID int64, n model.Notification) error {
	s.logger.Info("Notify: notification", "subject_id", subjectID, "kind", n.Kind, "title", n.Title, "message", n.Message)
	return nil
}
