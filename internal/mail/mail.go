// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mail sends outbound notification email (invitation and
// password-reset messages) through a pluggable EmailTransport.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"sync"

	"github.com/filevault/filevault/internal/config"
	"github.com/filevault/filevault/internal/logger"
)

// EmailTransport sends a single plain-text email. Implementations must be
// safe for concurrent use.
type EmailTransport interface {
	Send(ctx context.Context, to, subject, body string) error

	// Reconfigure swaps in new SMTP settings, invalidating anything cached
	// under the previous configuration. Called when the admin-configurable
	// settings bag changes the SMTP section.
	Reconfigure(cfg config.Mail)
}

// noopTransport discards every message; it backs the transport when mail
// is disabled so callers never need to nil-check.
type noopTransport struct {
	logger *logger.Logger
}

func (n *noopTransport) Send(ctx context.Context, to, subject, body string) error {
	n.logger.Debug().Str("to", to).Str("subject", subject).Msg("mail disabled, message dropped")
	return nil
}

func (n *noopTransport) Reconfigure(cfg config.Mail) {
	n.logger.Debug().Msg("mail disabled, ignoring smtp settings update")
}

// smtpTransport sends mail via net/smtp. It holds the current settings and
// their hash; each Send dials the server afresh through smtpSend, and no
// client connection is cached between sends.
type smtpTransport struct {
	mu     sync.Mutex
	cfg    config.Mail
	hash   string
	logger *logger.Logger
}

// NewTransport constructs an EmailTransport from cfg. When cfg.Enabled is
// false, a no-op transport is returned so invite/reset flows keep working
// without sending mail.
func NewTransport(cfg config.Mail, logger *logger.Logger) EmailTransport {
	if !cfg.Enabled {
		return &noopTransport{logger: logger}
	}
	return &smtpTransport{cfg: cfg, hash: settingsHash(cfg), logger: logger}
}

func settingsHash(cfg config.Mail) string {
	return fmt.Sprintf("%s:%d:%s:%s:%s", cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.From)
}

// Reconfigure swaps in new SMTP settings, invalidating anything cached
// under the previous configuration. Called when the admin-configurable
// settings bag changes the SMTP section.
func (t *smtpTransport) Reconfigure(cfg config.Mail) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cfg = cfg
	t.hash = settingsHash(cfg)
}

func (t *smtpTransport) Send(ctx context.Context, to, subject, body string) error {
	t.mu.Lock()
	cfg := t.cfg
	t.mu.Unlock()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	msg := buildMessage(cfg.From, to, subject, body)

	if err := smtpSend(addr, auth, cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("error sending mail: %w", err)
	}
	return nil
}

// smtpSend is a package variable so tests can substitute a fake dialer
// without reaching out over the network.
var smtpSend = smtp.SendMail

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
