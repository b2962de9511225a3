// Package notifier delivers reminder cues to the user: a desktop notification
// where the platform supports one, and a terminal bell fallback so a reminder
// is never silently dropped. Everything here is best-effort; failures are
// logged and swallowed.
package notifier

import (
	"fmt"
	"io"
	"os"

	"habitbuddy/internal/logger"
	"habitbuddy/internal/models"
)

// Desktop is the platform notification backend.
type Desktop interface {
	// Send shows a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound shows a notification and asks the daemon to play a sound.
	SendWithSound(title, message string) error

	// IsSupported reports whether this platform can show notifications.
	IsSupported() bool
}

type noopDesktop struct{}

func (noopDesktop) Send(title, message string) error          { return nil }
func (noopDesktop) SendWithSound(title, message string) error { return nil }
func (noopDesktop) IsSupported() bool                         { return false }

// NewDesktop returns the platform notifier, or a no-op when the platform has
// no usable notification mechanism.
func NewDesktop() Desktop {
	d := newPlatformDesktop()
	if d == nil || !d.IsSupported() {
		return noopDesktop{}
	}
	return d
}

// Notifier implements the reminder lifecycle cues. The zero value is not
// usable; construct with New.
type Notifier struct {
	desktop Desktop
	enabled bool
	sound   bool
	out     io.Writer
}

// New builds a notifier writing terminal cues to stderr. With enabled false
// desktop delivery is skipped entirely and only the terminal cues remain.
func New(desktop Desktop, enabled, sound bool) *Notifier {
	return &Notifier{desktop: desktop, enabled: enabled, sound: sound, out: os.Stderr}
}

// SetOutput redirects terminal cues, used by tests.
func (n *Notifier) SetOutput(w io.Writer) {
	n.out = w
}

// Remind announces a raised reminder prompt.
func (n *Notifier) Remind(h models.Habit) {
	message := fmt.Sprintf("Time for %q.", h.Title)
	if h.Reminder != nil {
		message = fmt.Sprintf("Time for %q (reminder set for %s).", h.Title, h.Reminder.Time)
	}
	n.deliver("Habit reminder", message)
	n.bell()
}

// CheckinDone celebrates a completed check-in from the reminder prompt.
func (n *Notifier) CheckinDone(h models.Habit) {
	n.deliver("Habit done", fmt.Sprintf("%q checked in. Keep the streak going!", h.Title))
	n.bell()
	fmt.Fprintf(n.out, "🎉 %s done for today\n", h.Title)
}

// Snoozed acknowledges a snoozed prompt with a gentle cue, no notification.
func (n *Notifier) Snoozed(h models.Habit) {
	fmt.Fprintf(n.out, "⏰ %s snoozed\n", h.Title)
}

func (n *Notifier) deliver(title, message string) {
	if !n.enabled {
		return
	}
	var err error
	if n.sound {
		err = n.desktop.SendWithSound(title, message)
	} else {
		err = n.desktop.Send(title, message)
	}
	if err != nil {
		logger.Warn("Desktop notification failed", "title", title, "error", err)
	}
}

// bell rings the terminal so the reminder registers even without a desktop
// notification daemon.
func (n *Notifier) bell() {
	fmt.Fprint(n.out, "\a")
}
