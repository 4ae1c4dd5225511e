// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package mailer delivers password-reset mail over SMTP. The Mailer interface
// keeps the auth handlers testable with a fake; SMTPMailer is the production
// implementation and LogMailer stands in when no SMTP host is configured.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/logging"
)

// Mailer sends a password-reset link to a single recipient.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	cfg *config.SMTPConfig
}

// NewSMTPMailer creates an SMTP-backed mailer.
func NewSMTPMailer(cfg *config.SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// SendPasswordReset delivers the reset link. Failures propagate to the caller
// so the pending token can be cleared; a token that was never delivered must
// not stay valid.
func (m *SMTPMailer) SendPasswordReset(_ context.Context, to, resetURL string) error {
	msg := m.buildMessage(to, resetURL)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(to, resetURL string) []byte {
	var b strings.Builder
	b.WriteString("From: " + m.cfg.From + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: Password reset\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("You requested a password reset.\r\n\r\n")
	b.WriteString("Open the link below to choose a new password. The link expires in 10 minutes.\r\n\r\n")
	b.WriteString(resetURL + "\r\n\r\n")
	b.WriteString("If you did not request this, you can ignore this mail.\r\n")
	return []byte(b.String())
}

// LogMailer logs reset links instead of sending them. Used in development
// when SMTP is not configured.
type LogMailer struct{}

// SendPasswordReset logs the reset link at info level.
func (LogMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	logging.Ctx(ctx).Info().Str("to", to).Str("reset_url", resetURL).Msg("SMTP not configured, logging reset link")
	return nil
}

// FromConfig returns an SMTPMailer when a host is configured and a LogMailer
// otherwise.
func FromConfig(cfg *config.SMTPConfig) (Mailer, error) {
	if cfg.Host == "" {
		return LogMailer{}, nil
	}
	return NewSMTPMailer(cfg)
}
