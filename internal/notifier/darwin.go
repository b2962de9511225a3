//go:build darwin

package notifier

import (
	"fmt"
	"os/exec"
	"strings"
)

// darwinDesktop shows notifications through osascript.
type darwinDesktop struct{}

func newPlatformDesktop() Desktop {
	return &darwinDesktop{}
}

func (d *darwinDesktop) Send(title, message string) error {
	return d.send(title, message, false)
}

func (d *darwinDesktop) SendWithSound(title, message string) error {
	return d.send(title, message, true)
}

func (d *darwinDesktop) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (d *darwinDesktop) send(title, message string, sound bool) error {
	title = escapeAppleScript(title)
	message = escapeAppleScript(message)

	script := fmt.Sprintf(`display notification %q with title %q`, message, title)
	if sound {
		script = fmt.Sprintf(`display notification %q with title %q sound name "default"`, message, title)
	}

	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
