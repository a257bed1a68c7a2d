// Package email renders and delivers the notification mails. Every provider
// implements Sender; the provider is picked once at startup from config.
package email

import (
	"context"
	"errors"
	"fmt"

	"drishti_backend/platform/config"
	"drishti_backend/platform/logger"
)

// Message is a rendered mail addressed to a single recipient.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a rendered message. Implementations are safe for
// concurrent use.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// ErrNotConfigured is returned at send time when the provider lacks the
// credential it needs. A missing credential is not a startup error.
var ErrNotConfigured = errors.New("email provider not configured")

// NoopSender drops every message. Used for local development.
type NoopSender struct {
	log *logger.Logger
}

func (NoopSender) Name() string { return config.EmailProviderNoop }

func (s NoopSender) Send(ctx context.Context, msg Message) error {
	if s.log != nil {
		s.log.WithContext(ctx).Debug("noop sender: dropping mail", "to", msg.To, "subject", msg.Subject)
	}
	return nil
}

// NewSender builds the provider selected by cfg.
func NewSender(ctx context.Context, cfg config.EmailConfig, log *logger.Logger) (Sender, error) {
	switch cfg.GetEmailProvider() {
	case config.EmailProviderNoop:
		return NoopSender{log: log}, nil
	case config.EmailProviderBrevo:
		return NewBrevoSender(cfg.GetBrevoAPIKey(), cfg.GetEmailFromAddress(), cfg.GetEmailFromName()), nil
	case config.EmailProviderSendGrid:
		return NewSendGridSender(cfg.GetSendGridAPIKey(), cfg.GetEmailFromAddress(), cfg.GetEmailFromName()), nil
	case config.EmailProviderSES:
		return NewSESSenderFromConfig(ctx, cfg.GetAWSRegion(), cfg.GetEmailFromAddress(), cfg.GetEmailFromName())
	case config.EmailProviderSMTP:
		return NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.GetEmailProvider())
	}
}
