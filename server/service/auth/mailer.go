package auth

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/internal/profile"
)

// SMTPSender delivers OTP codes over SMTP with STARTTLS auth.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	orgName  string
}

// NewSMTPSender builds a sender from the profile's email settings.
// Returns nil when no credentials are configured.
func NewSMTPSender(p *profile.Profile) *SMTPSender {
	if p.EmailUser == "" || p.EmailPassword == "" {
		return nil
	}
	return &SMTPSender{
		host:     p.EmailSMTPHost,
		port:     p.EmailSMTPPort,
		username: p.EmailUser,
		password: p.EmailPassword,
		orgName:  p.OrgName,
	}
}

// SendOTP emails the one-time code to the employee.
func (s *SMTPSender) SendOTP(ctx context.Context, to, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("%s HR Assistant - Your OTP", s.orgName)
	body := fmt.Sprintf(
		"Your one-time password is: %s\r\n\r\nIt expires in 5 minutes. If you did not request this code, ignore this email.\r\n",
		code,
	)
	msg := strings.Join([]string{
		"From: " + s.username,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.username, []string{to}, []byte(msg)); err != nil {
		return errors.Wrapf(err, "failed to send mail via %s", addr)
	}
	return nil
}
