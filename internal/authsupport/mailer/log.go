package mailer

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/authsupport"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"go.uber.org/zap"
)

// LogMailer writes messages to the log instead of sending them. Local
// development only: codes and tokens end up in the log.
type LogMailer struct {
	logger logger.ZapLogger
}

func NewLogMailer(log logger.ZapLogger) *LogMailer {
	return &LogMailer{logger: log}
}

func (m *LogMailer) Send(_ context.Context, msg authsupport.Message) error {
	m.logger.Warn("email webhook not configured, logging message",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("type", msg.Type),
		zap.String("verification_code", msg.VerificationCode),
		zap.String("reset_link", msg.ResetLink),
	)
	return nil
}
