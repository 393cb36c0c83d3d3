package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"metalwatch/internal/config"
	"metalwatch/internal/store"
)

// fakeChannel counts sends and can simulate failure.
type fakeChannel struct {
	name    string
	enabled bool
	fail    bool
	sent    int
}

func (f *fakeChannel) Name() string    { return f.name }
func (f *fakeChannel) IsEnabled() bool { return f.enabled }
func (f *fakeChannel) Send(ctx context.Context, title, message string) error {
	f.sent++
	if f.fail {
		return errors.New("channel unreachable")
	}
	return nil
}

func TestNotifyRemoteSwallowsFailures(t *testing.T) {
	healthy := &fakeChannel{name: "webhook", enabled: true}
	broken := &fakeChannel{name: "telegram", enabled: true, fail: true}
	disabled := &fakeChannel{name: "email", enabled: false}

	d := &MultiDispatcher{logger: zerolog.Nop()}
	d.AddChannel(broken)
	d.AddChannel(healthy)
	d.AddChannel(disabled)

	if err := d.NotifyRemote(context.Background(), "Alert", "gold moved"); err != nil {
		t.Fatalf("remote failures must never surface as errors, got %v", err)
	}
	if healthy.sent != 1 {
		t.Errorf("healthy channel sent %d times, want 1", healthy.sent)
	}
	if broken.sent != 1 {
		t.Errorf("broken channel must still be attempted, sent %d", broken.sent)
	}
	if disabled.sent != 0 {
		t.Errorf("disabled channel must be skipped, sent %d", disabled.sent)
	}
}

func TestNewMultiDispatcherChannelSelection(t *testing.T) {
	cfg := &config.NotificationConfig{}
	cfg.Webhook.Enabled = true
	cfg.Webhook.URL = "https://example.com/hook"

	d := NewMultiDispatcher(cfg, zerolog.Nop())
	if len(d.channels) != 1 {
		t.Fatalf("expected only the enabled channel, got %d", len(d.channels))
	}
	if d.channels[0].Name() != "webhook" {
		t.Errorf("channel = %q, want webhook", d.channels[0].Name())
	}
}

func TestSetEmailRecipientOverridesConfiguredChannel(t *testing.T) {
	cfg := &config.NotificationConfig{}
	cfg.Email.Enabled = true
	cfg.Email.SMTPHost = "smtp.example.com"
	cfg.Email.From = "alerts@example.com"
	cfg.Email.To = "default@example.com"

	d := NewMultiDispatcher(cfg, zerolog.Nop())
	d.SetEmailRecipient(cfg.Email, "stored@example.com")

	ec, ok := d.channels[0].(*EmailChannel)
	if !ok {
		t.Fatalf("expected an email channel, got %T", d.channels[0])
	}
	if ec.to != "stored@example.com" {
		t.Errorf("recipient = %q, want the stored opt-in address", ec.to)
	}
}

func TestSetEmailRecipientIsTheOptIn(t *testing.T) {
	// Email disabled in config, but SMTP settings are present: storing an
	// address turns delivery on with that recipient.
	cfg := &config.NotificationConfig{}
	cfg.Email.SMTPHost = "smtp.example.com"
	cfg.Email.From = "alerts@example.com"

	d := NewMultiDispatcher(cfg, zerolog.Nop())
	if len(d.channels) != 0 {
		t.Fatalf("expected no channels before opt-in, got %d", len(d.channels))
	}

	d.SetEmailRecipient(cfg.Email, "stored@example.com")
	if len(d.channels) != 1 {
		t.Fatalf("opt-in must add the email channel, got %d channels", len(d.channels))
	}
	ec := d.channels[0].(*EmailChannel)
	if !ec.IsEnabled() || ec.to != "stored@example.com" {
		t.Errorf("channel = enabled=%v to=%q, want enabled with stored address", ec.IsEnabled(), ec.to)
	}

	// Without SMTP settings there is nothing to deliver through.
	bare := NewMultiDispatcher(&config.NotificationConfig{}, zerolog.Nop())
	bare.SetEmailRecipient(config.EmailConfig{}, "stored@example.com")
	if len(bare.channels) != 0 {
		t.Errorf("opt-in without SMTP settings must stay a no-op, got %d channels", len(bare.channels))
	}

	// An empty stored address is not an opt-in.
	d.SetEmailRecipient(cfg.Email, "")
	if ec.to != "stored@example.com" {
		t.Errorf("empty address must not clobber the recipient, got %q", ec.to)
	}
}

func TestToastArgsCarryExpireTime(t *testing.T) {
	args := toastArgs("Price alert", "gold moved")
	if len(args) != 4 || args[2] != "Price alert" || args[3] != "gold moved" {
		t.Fatalf("unexpected args: %v", args)
	}
	if args[1] != "--expire-time=4000" {
		t.Errorf("expire time arg = %q, want --expire-time=4000", args[1])
	}
}

func TestDailyGate(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()

	g := NewDailyGate(kv)
	day1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.Local)
	g.now = func() time.Time { return day1 }

	if !g.ShouldSend(ctx) {
		t.Fatal("first check of the day must allow sending")
	}
	if err := g.MarkSent(ctx); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	if g.ShouldSend(ctx) {
		t.Error("second check the same day must be suppressed")
	}

	// Later the same day, still suppressed.
	g.now = func() time.Time { return day1.Add(10 * time.Hour) }
	if g.ShouldSend(ctx) {
		t.Error("same calendar day must stay suppressed")
	}

	// Next day reopens the gate.
	g.now = func() time.Time { return day1.Add(24 * time.Hour) }
	if !g.ShouldSend(ctx) {
		t.Error("next day must allow sending again")
	}
}

func TestDailyGateStoreErrorReadsAsNotSent(t *testing.T) {
	kv := store.NewMemoryStore()
	kv.Close()

	g := NewDailyGate(kv)
	if !g.ShouldSend(context.Background()) {
		t.Error("a broken store must not suppress the notification")
	}
}
