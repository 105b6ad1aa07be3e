package authsupport

import (
	"context"
	"errors"
)

var (
	ErrInvalidCode = errors.New("invalid or expired verification code")
	ErrDelivery    = errors.New("email delivery failed")
)

// Message is what the email automation webhook receives.
type Message struct {
	To               string `json:"to"`
	From             string `json:"from"`
	Subject          string `json:"subject"`
	VerificationCode string `json:"verificationCode,omitempty"`
	ResetToken       string `json:"resetToken,omitempty"`
	ResetLink        string `json:"resetLink,omitempty"`
	UserName         string `json:"userName"`
	Type             string `json:"type"`
}

const (
	TypeVerification  = "verification"
	TypePasswordReset = "password-reset"
)

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type UseCase interface {
	SendVerificationEmail(ctx context.Context, email string) error
	SendPasswordReset(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, code string) error
}
