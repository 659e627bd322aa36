package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"meditech-backend/internal/config"
	apperrors "meditech-backend/pkg/errors"
)

// Notifier sends a templated notification to a single recipient. The core
// does not know the transport behind it.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// EmailService handles sending emails over SMTP
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// Send sends an HTML email with plain text fallback. The SMTP exchange runs
// in a goroutine so the context deadline bounds how long a caller waits; a
// timed-out send is reported as a notification failure.
func (s *EmailService) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		log.Printf("[EMAIL] Would send to %s: %s", to, subject)
		return nil
	}

	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return apperrors.New(apperrors.ErrCodeNotification, "email service not properly configured")
	}

	done := make(chan error, 1)
	go func() {
		done <- s.send(to, subject, htmlBody, textBody)
	}()

	select {
	case err := <-done:
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeNotification, "failed to send email", err)
		}
		return nil
	case <-ctx.Done():
		return apperrors.Wrap(apperrors.ErrCodeNotification, "email send timed out", ctx.Err())
	}
}

func (s *EmailService) send(to, subject, htmlBody, textBody string) error {
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	// Build multipart message
	boundary := "----=_NextPart_1234567890"

	headers := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n"

	// Plain text part
	message := headers +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		textBody + "\r\n"

	// HTML part (if provided)
	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
