package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	appErr "github.com/airsense/platform/pkg/errors"
)

// Sender delivers the platform's transactional mail.
type Sender interface {
	SendVerificationCode(to, code string) error
	SendNewPassword(to, password string) error
}

// Mailer sends mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, user, pass string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

func (m *Mailer) SendVerificationCode(to, code string) error {
	body := fmt.Sprintf(
		"Your verification code is: %s\n\nEnter this code to confirm your email address.",
		code,
	)
	return m.send(to, "Verify your email", body)
}

func (m *Mailer) SendNewPassword(to, password string) error {
	body := fmt.Sprintf(
		"Your password has been reset. Your new password is: %s\n\nYou can change it from your profile page after logging in.",
		password,
	)
	return m.send(to, "Your new password", body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "send mail failed")
	}
	return nil
}
