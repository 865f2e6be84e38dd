package notify

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/Nexus/internal/logger"
)

// Notifier surfaces transient, user-facing notifications. Views call it once
// per failed or completed mutation; nothing is queued or retried.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

type zapNotifier struct{}

// NewZapNotifier returns a Notifier that writes notifications to the global
// logger. The demo binary uses it in place of a real toast surface.
func NewZapNotifier() Notifier {
	return zapNotifier{}
}

func (zapNotifier) Success(title, message string) {
	logger.L().Info("notification",
		zap.String("kind", "success"),
		zap.String("title", title),
		zap.String("message", message),
	)
}

func (zapNotifier) Error(title, message string) {
	logger.L().Warn("notification",
		zap.String("kind", "error"),
		zap.String("title", title),
		zap.String("message", message),
	)
}
