//go:build linux

package notifier

import (
	"fmt"
	"os/exec"
)

// linuxDesktop shows notifications through notify-send.
type linuxDesktop struct{}

func newPlatformDesktop() Desktop {
	return &linuxDesktop{}
}

func (d *linuxDesktop) Send(title, message string) error {
	return d.send(title, message, false)
}

func (d *linuxDesktop) SendWithSound(title, message string) error {
	// Sound depends on the notification daemon configuration.
	return d.send(title, message, true)
}

func (d *linuxDesktop) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (d *linuxDesktop) send(title, message string, sound bool) error {
	args := []string{"--app-name=habitbuddy", title, message}
	if sound {
		args = append([]string{"--urgency=normal"}, args...)
	}

	if err := exec.Command("notify-send", args...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
