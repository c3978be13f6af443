// internal/notify/notifier.go
package notify

import (
	"context"

	"go.uber.org/zap"

	"hydroflow-bot/internal/domain"
)

// Notifier delivers outbound messages to a user. Implementations live at the
// transport edge; the hydration core only calls Notify.
type Notifier interface {
	Notify(ctx context.Context, userID int64, n domain.Notification) error
}

// LogNotifier writes notifications to the log instead of delivering them.
// It is used when no outbound transport is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, userID int64, msg domain.Notification) error {
	n.logger.Info("notification",
		zap.Int64("user_id", userID),
		zap.String("kind", string(msg.Kind)),
		zap.Any("payload", msg),
	)
	return nil
}
