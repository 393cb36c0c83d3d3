package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ToastDuration is how long a desktop toast stays on screen, passed to the
// notification service as its expire time.
const ToastDuration = 4000 // milliseconds

// TerminalNotifier delivers notifications to the local machine. When the
// desktop notification service is available it is preferred; otherwise the
// message degrades to a toast line on stderr.
type TerminalNotifier struct {
	// notifySendPath is resolved once; empty means unavailable.
	notifySendPath string
}

// NewTerminalNotifier creates a local notifier, probing for notify-send.
func NewTerminalNotifier() *TerminalNotifier {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		path = ""
	}
	return &TerminalNotifier{notifySendPath: path}
}

// Send shows the notification. A desktop-service failure falls back to the
// toast; only the fallback write itself can fail.
func (t *TerminalNotifier) Send(ctx context.Context, title, message string) error {
	if t.notifySendPath != "" {
		cmd := exec.CommandContext(ctx, t.notifySendPath, toastArgs(title, message)...)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	_, err := fmt.Fprintf(os.Stderr, "\n🔔 %s\n   %s\n", title, message)
	return err
}

func toastArgs(title, message string) []string {
	return []string{
		"--app-name=metalwatch",
		"--expire-time=" + strconv.Itoa(ToastDuration),
		title,
		message,
	}
}
