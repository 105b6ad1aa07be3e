package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/authsupport"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"go.uber.org/zap"
)

type Config struct {
	SenderEmail string
	PublicURL   string
	BrandName   string
}

type authSupportUseCase struct {
	cfg    Config
	codes  *authsupport.CodeStore
	mailer authsupport.Mailer
	logger logger.ZapLogger
}

func NewAuthSupportUseCase(cfg Config, codes *authsupport.CodeStore, mailer authsupport.Mailer, log logger.ZapLogger) authsupport.UseCase {
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	return &authSupportUseCase{
		cfg:    cfg,
		codes:  codes,
		mailer: mailer,
		logger: log,
	}
}

// SendVerificationEmail mails a fresh 4-digit code. The code is stored only
// after the webhook accepted the message.
func (uc *authSupportUseCase) SendVerificationEmail(ctx context.Context, email string) error {
	code, err := authsupport.NewVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	err = uc.mailer.Send(ctx, authsupport.Message{
		To:               email,
		From:             uc.cfg.SenderEmail,
		Subject:          "Verify Your Email - " + uc.cfg.BrandName,
		VerificationCode: code,
		UserName:         email,
		Type:             authsupport.TypeVerification,
	})
	if err != nil {
		uc.logger.Error("failed to send verification email", zap.String("email", email), zap.Error(err))
		return err
	}

	if err := uc.codes.Put(ctx, email, code); err != nil {
		uc.logger.Error("failed to store verification code", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	uc.logger.Info("verification email sent", zap.String("email", email))
	return nil
}

func (uc *authSupportUseCase) SendPasswordReset(ctx context.Context, email string) error {
	token, err := authsupport.NewResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	err = uc.mailer.Send(ctx, authsupport.Message{
		To:         email,
		From:       uc.cfg.SenderEmail,
		Subject:    "Password Reset - " + uc.cfg.BrandName,
		ResetToken: token,
		ResetLink:  uc.cfg.PublicURL + "/reset-password?token=" + url.QueryEscape(token),
		UserName:   email,
		Type:       authsupport.TypePasswordReset,
	})
	if err != nil {
		uc.logger.Error("failed to send password reset email", zap.String("email", email), zap.Error(err))
		return err
	}
	uc.logger.Info("password reset email sent", zap.String("email", email))
	return nil
}

func (uc *authSupportUseCase) VerifyEmail(ctx context.Context, email, code string) error {
	if err := uc.codes.Consume(ctx, email, code); err != nil {
		uc.logger.Warn("email verification failed", zap.String("email", email), zap.Error(err))
		return err
	}
	uc.logger.Info("email verified", zap.String("email", email))
	return nil
}
