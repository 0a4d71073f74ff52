package cli

import (
	"fmt"
	"time"

	"github.com/ismet55555/yojenkins-sub000/internal/config"
	"github.com/ismet55555/yojenkins-sub000/internal/errors"
	"github.com/ismet55555/yojenkins-sub000/internal/monitor"
	"github.com/spf13/cobra"
)

// MonitorFlags holds the flags shared by the build and job monitors.
// Empty interval strings keep the configured value.
type MonitorFlags struct {
	Sound          bool
	BuildInterval  string
	StagesInterval string
	JobInterval    string
	BuildsInterval string
}

// AddMonitorFlags registers --sound and the polling interval flags that
// apply to kind.
func AddMonitorFlags(cmd *cobra.Command, flags *MonitorFlags, kind monitor.Kind) {
	cmd.Flags().BoolVar(&flags.Sound, "sound", false, "play a sound when the build finishes")
	if kind == monitor.KindJob {
		cmd.Flags().StringVar(&flags.JobInterval, "interval-job", "", "job refresh interval (e.g., 1s, 500ms)")
		cmd.Flags().StringVar(&flags.BuildsInterval, "interval-builds", "", "recent builds refresh interval")
		return
	}
	cmd.Flags().StringVar(&flags.BuildInterval, "interval-build", "", "build refresh interval (e.g., 1s, 500ms)")
	cmd.Flags().StringVar(&flags.StagesInterval, "interval-stages", "", "stages refresh interval")
}

// Apply overlays the flag values on cfg and validates the result.
func (f MonitorFlags) Apply(cfg config.MonitorConfig) (config.MonitorConfig, error) {
	overrides := []struct {
		flag   string
		value  string
		target *time.Duration
	}{
		{"--interval-build", f.BuildInterval, &cfg.BuildInterval},
		{"--interval-stages", f.StagesInterval, &cfg.StagesInterval},
		{"--interval-job", f.JobInterval, &cfg.JobInterval},
		{"--interval-builds", f.BuildsInterval, &cfg.BuildsInterval},
	}
	for _, o := range overrides {
		d, err := ParseInterval(o.flag, o.value)
		if err != nil {
			return cfg, err
		}
		if d > 0 {
			*o.target = d
		}
	}
	if f.Sound {
		cfg.Sound = true
	}

	full := config.DefaultConfig()
	full.Monitor = cfg
	if err := config.Validate(full); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseInterval parses a polling interval flag. Returns zero duration if the
// flag is empty.
func ParseInterval(name, flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval for %s", flag, name),
			"Try something like 1s, 2m, or 500ms.")
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("%s must be positive (got %s)", name, flag),
			"Try something like 1s, 2m, or 500ms.")
	}
	return d, nil
}
