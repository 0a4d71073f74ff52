package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ismet55555/yojenkins-sub000/internal/errors"
)

// Minimums below which the monitor would either hammer the server or be unusable.
const (
	minPollInterval  = 200 * time.Millisecond
	minFrameInterval = 16 * time.Millisecond
	minTermWidth     = 40
	minTermHeight    = 10
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but yojenkins only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade yojenkins to read this config.")
	}

	for name, p := range cfg.Profiles {
		if err := ValidateProfile(name, p); err != nil {
			return err
		}
	}

	if err := validateMonitor(cfg.Monitor); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'monitor' section in your "+ConfigFileName+".")
	}

	return nil
}

// ValidateProfile checks that a profile can be used to build a client.
func ValidateProfile(name string, p Profile) error {
	if strings.TrimSpace(p.ServerURL) == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Profile '%s' has no server_url", name),
			"Set server_url, e.g. https://ci.example.com/")
	}

	u, err := url.Parse(p.ServerURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Profile '%s' has an invalid server_url: %q", name, p.ServerURL),
			"Use a full URL including the scheme, e.g. https://ci.example.com/")
	}

	if (p.Username == "") != (p.APIToken == "") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Profile '%s' needs both username and api_token, or neither", name),
			"Anonymous access leaves both empty; authenticated access sets both.")
	}

	return nil
}

func validateMonitor(m MonitorConfig) error {
	intervals := []struct {
		name  string
		value time.Duration
		min   time.Duration
	}{
		{"build_interval", m.BuildInterval, minPollInterval},
		{"stages_interval", m.StagesInterval, minPollInterval},
		{"job_interval", m.JobInterval, minPollInterval},
		{"builds_interval", m.BuildsInterval, minPollInterval},
		{"server_interval", m.ServerInterval, minPollInterval},
		{"frame_interval", m.FrameInterval, minFrameInterval},
	}
	for _, iv := range intervals {
		if iv.value < iv.min {
			return fmt.Errorf("monitor.%s must be at least %s (got %s)", iv.name, iv.min, iv.value)
		}
	}

	if m.MinWidth < minTermWidth {
		return fmt.Errorf("monitor.min_width must be at least %d (got %d)", minTermWidth, m.MinWidth)
	}
	if m.MinHeight < minTermHeight {
		return fmt.Errorf("monitor.min_height must be at least %d (got %d)", minTermHeight, m.MinHeight)
	}

	return nil
}
