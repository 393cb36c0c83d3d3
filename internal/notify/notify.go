// Package notify provides the notification dispatch boundary. The alert
// engine decides whether and what to send; this package decides where.
package notify

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"metalwatch/internal/config"
	apperrors "metalwatch/internal/errors"
)

// Dispatcher is the boundary the alert engine dispatches through. Local
// delivery targets the user's own machine; remote delivery fans out to any
// configured off-device channels.
type Dispatcher interface {
	NotifyLocal(ctx context.Context, title, message string) error
	NotifyRemote(ctx context.Context, title, message string) error
}

// Channel is a single remote delivery channel.
type Channel interface {
	Name() string
	Send(ctx context.Context, title, message string) error
	IsEnabled() bool
}

// MultiDispatcher delivers locally first, then fans out to remote channels.
// Remote failures are logged and swallowed: by the time dispatch runs the
// alert cooldown is already committed and is never rolled back.
type MultiDispatcher struct {
	local    *TerminalNotifier
	channels []Channel
	logger   zerolog.Logger
}

// NewMultiDispatcher creates a dispatcher with the channels enabled in the
// notification configuration.
func NewMultiDispatcher(cfg *config.NotificationConfig, logger zerolog.Logger) *MultiDispatcher {
	d := &MultiDispatcher{
		local:  NewTerminalNotifier(),
		logger: logger,
	}

	if cfg.Webhook.Enabled {
		d.channels = append(d.channels, NewWebhookChannel(cfg.Webhook))
	}
	if cfg.Telegram.Enabled {
		d.channels = append(d.channels, NewTelegramChannel(cfg.Telegram))
	}
	if cfg.Email.Enabled {
		d.channels = append(d.channels, NewEmailChannel(cfg.Email))
	}

	return d
}

// AddChannel adds a remote channel.
func (d *MultiDispatcher) AddChannel(ch Channel) {
	d.channels = append(d.channels, ch)
}

// SetEmailRecipient routes email delivery to the stored opt-in address.
// Storing an address is the opt-in: when no email channel is configured yet,
// one is created from the config's SMTP settings with the stored recipient.
// Without SMTP settings there is nothing to deliver through and the call is
// a no-op.
func (d *MultiDispatcher) SetEmailRecipient(cfg config.EmailConfig, to string) {
	if to == "" {
		return
	}
	for _, ch := range d.channels {
		if ec, ok := ch.(*EmailChannel); ok {
			ec.SetRecipient(to)
			return
		}
	}
	cfg.Enabled = true
	cfg.To = to
	if ch := NewEmailChannel(cfg); ch.IsEnabled() {
		d.channels = append(d.channels, ch)
	}
}

// NotifyLocal shows the message on the user's machine, preferring the
// desktop notification service and falling back to a terminal toast.
func (d *MultiDispatcher) NotifyLocal(ctx context.Context, title, message string) error {
	return d.local.Send(ctx, title, message)
}

// NotifyRemote delivers the message to every enabled remote channel,
// asynchronously from the caller's point of view: failures are logged, never
// retried and never returned as hard errors.
func (d *MultiDispatcher) NotifyRemote(ctx context.Context, title, message string) error {
	var failed []string
	for _, ch := range d.channels {
		if !ch.IsEnabled() {
			continue
		}
		if err := ch.Send(ctx, title, message); err != nil {
			derr := apperrors.NewDispatchError(ch.Name(), err)
			d.logger.Warn().Err(derr).Str("channel", ch.Name()).Msg("Remote dispatch failed")
			failed = append(failed, ch.Name())
		}
	}
	if len(failed) > 0 {
		d.logger.Debug().Str("channels", strings.Join(failed, ",")).Msg("Dispatch completed with failures")
	}
	return nil
}

// NoopDispatcher discards all notifications.
type NoopDispatcher struct{}

// NotifyLocal does nothing.
func (NoopDispatcher) NotifyLocal(ctx context.Context, title, message string) error { return nil }

// NotifyRemote does nothing.
func (NoopDispatcher) NotifyRemote(ctx context.Context, title, message string) error { return nil }

// defaultTimeout bounds a single channel send.
const defaultTimeout = 10 * time.Second
