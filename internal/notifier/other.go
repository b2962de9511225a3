//go:build !darwin && !linux

package notifier

// stubDesktop is the fallback for platforms without a notification hook; the
// terminal bell still fires.
type stubDesktop struct{}

func newPlatformDesktop() Desktop {
	return &stubDesktop{}
}

func (stubDesktop) Send(title, message string) error          { return nil }
func (stubDesktop) SendWithSound(title, message string) error { return nil }
func (stubDesktop) IsSupported() bool                         { return false }
