package jenkins

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommand builds the OS-specific opener. Swapped out in tests.
var browserCommand = func(url string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return nil, fmt.Errorf("xdg-open not found: %w", err)
		}
		return exec.Command("xdg-open", url), nil
	default:
		return nil, fmt.Errorf("opening a browser is not supported on %s", runtime.GOOS)
	}
}

// OpenInBrowser launches the default browser on url without waiting for it.
// The opener's output is discarded so it can't draw over the monitor.
func OpenInBrowser(url string) error {
	cmd, err := browserCommand(url)
	if err != nil {
		return err
	}
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
