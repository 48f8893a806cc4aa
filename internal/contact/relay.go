// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned when email delivery settings are missing.
var ErrNotConfigured = errors.New("email delivery is not configured")

// Message is an outgoing email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var htmlBody = template.Must(template.New("contact").Parse(
	`<p><strong>Name:</strong> {{.Name}}</p>` +
		`<p><strong>Email:</strong> {{.Email}}</p>` +
		`<p><strong>Message</strong></p>` +
		`<p>{{.Message}}</p>`))

// Compose builds the notification email for a submission.
func Compose(f Form, from, to string) (Message, error) {
	var buf bytes.Buffer
	if err := htmlBody.Execute(&buf, f); err != nil {
		return Message{}, fmt.Errorf("rendering contact email: %w", err)
	}
	return Message{
		From:    from,
		To:      to,
		ReplyTo: f.Email,
		Subject: "New Locale Lab inquiry from " + f.Name,
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\nMessage:\n%s", f.Name, f.Email, f.Message),
		HTML:    buf.String(),
	}, nil
}

// Relay forwards validated submissions to the site owner.
type Relay struct {
	mailer Mailer
	from   string
	to     string
	logger *slog.Logger
}

// NewRelay creates a relay sending from the from address to the to address.
func NewRelay(mailer Mailer, from, to string, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{mailer: mailer, from: from, to: to, logger: logger}
}

// Submit sends a validated form and returns the submission reference.
func (r *Relay) Submit(ctx context.Context, f Form) (string, error) {
	ref := uuid.NewString()
	start := time.Now()

	if r.mailer == nil || r.from == "" || r.to == "" {
		r.logger.Error("contact submission dropped", "reference", ref, "error", ErrNotConfigured)
		return ref, ErrNotConfigured
	}

	msg, err := Compose(f, r.from, r.to)
	if err != nil {
		return ref, err
	}
	if err := r.mailer.Send(ctx, msg); err != nil {
		r.logger.Error("contact email failed", "reference", ref, "error", err)
		return ref, fmt.Errorf("sending contact email: %w", err)
	}

	r.logger.Info("contact email sent",
		"reference", ref,
		"locale", f.Locale,
		"duration", time.Since(start).Round(time.Millisecond))
	return ref, nil
}
