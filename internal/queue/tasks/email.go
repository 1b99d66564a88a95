package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/airsense/platform/internal/mailer"
	"github.com/airsense/platform/pkg/logger"
)

const (
	TypeVerificationEmail = "email:verification"
	TypeNewPasswordEmail  = "email:new_password"

	// Mail delivery is retried a bounded number of times on transient
	// provider failures before the task is marked failed.
	MailMaxRetry = 3
)

// VerificationEmailPayload carries a verification code to deliver.
type VerificationEmailPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// NewPasswordEmailPayload carries a freshly generated password to deliver.
type NewPasswordEmailPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewVerificationEmailTask(email, code string) (*asynq.Task, error) {
	payload, err := json.Marshal(VerificationEmailPayload{Email: email, Code: code})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeVerificationEmail, payload, asynq.MaxRetry(MailMaxRetry)), nil
}

func NewPasswordEmailTask(email, password string) (*asynq.Task, error) {
	payload, err := json.Marshal(NewPasswordEmailPayload{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNewPasswordEmail, payload, asynq.MaxRetry(MailMaxRetry)), nil
}

// EmailTaskHandler delivers queued mail through the configured sender.
type EmailTaskHandler struct {
	sender mailer.Sender
}

func NewEmailTaskHandler(sender mailer.Sender) *EmailTaskHandler {
	return &EmailTaskHandler{sender: sender}
}

func (h *EmailTaskHandler) HandleVerificationEmail(ctx context.Context, t *asynq.Task) error {
	var p VerificationEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid verification email payload", zap.Error(err))
		return err
	}
	if err := h.sender.SendVerificationCode(p.Email, p.Code); err != nil {
		logger.L().Warn("verification email delivery failed", zap.String("email", p.Email), zap.Error(err))
		return err
	}
	logger.L().Info("verification email sent", zap.String("email", p.Email))
	return nil
}

func (h *EmailTaskHandler) HandleNewPasswordEmail(ctx context.Context, t *asynq.Task) error {
	var p NewPasswordEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid new password email payload", zap.Error(err))
		return err
	}
	if err := h.sender.SendNewPassword(p.Email, p.Password); err != nil {
		logger.L().Warn("new password email delivery failed", zap.String("email", p.Email), zap.Error(err))
		return err
	}
	logger.L().Info("new password email sent", zap.String("email", p.Email))
	return nil
}
