package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
const CurrentConfigVersion = 1

// Config represents the complete yojenkins configuration file.
type Config struct {
	Version        int                `yaml:"version" mapstructure:"version"`
	DefaultProfile string             `yaml:"default_profile" mapstructure:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles" mapstructure:"profiles"`
	Monitor        MonitorConfig      `yaml:"monitor" mapstructure:"monitor"`
}

// Profile holds what is needed to talk to one server.
// Profiles are read-only to yojenkins; nothing here is ever written back.
type Profile struct {
	// ServerURL is the base URL of the server, e.g. https://ci.example.com/.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`

	// Username used for basic auth alongside the API token.
	Username string `yaml:"username" mapstructure:"username"`

	// APIToken is the user's API token (never a password).
	APIToken string `yaml:"api_token" mapstructure:"api_token"`

	// Insecure skips TLS verification for servers with self-signed certificates.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// Timeout bounds every individual HTTP request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// MonitorConfig controls the live terminal monitor.
type MonitorConfig struct {
	// BuildInterval is how often the monitored build is re-fetched.
	BuildInterval time.Duration `yaml:"build_interval" mapstructure:"build_interval"`

	// StagesInterval is how often the stage list is re-fetched.
	StagesInterval time.Duration `yaml:"stages_interval" mapstructure:"stages_interval"`

	// JobInterval is how often the monitored job is re-fetched.
	JobInterval time.Duration `yaml:"job_interval" mapstructure:"job_interval"`

	// BuildsInterval is how often a job's recent builds are re-fetched.
	BuildsInterval time.Duration `yaml:"builds_interval" mapstructure:"builds_interval"`

	// ServerInterval is how often server reachability is checked.
	ServerInterval time.Duration `yaml:"server_interval" mapstructure:"server_interval"`

	// FrameInterval is the redraw rate of the dashboard.
	FrameInterval time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"`

	// Sound enables the build-finished sound by default.
	Sound bool `yaml:"sound" mapstructure:"sound"`

	// SoundCommand plays a sound; "{sound}" is replaced by the sound name.
	// Empty means ring the terminal bell.
	SoundCommand string `yaml:"sound_command" mapstructure:"sound_command"`

	// MinWidth and MinHeight are the smallest terminal the dashboard draws into.
	MinWidth  int `yaml:"min_width" mapstructure:"min_width"`
	MinHeight int `yaml:"min_height" mapstructure:"min_height"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		DefaultProfile: "default",
		Profiles:       make(map[string]Profile),
		Monitor:        DefaultMonitorConfig(),
	}
}

// DefaultMonitorConfig returns the monitor defaults.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		BuildInterval:  1 * time.Second,
		StagesInterval: 2 * time.Second,
		JobInterval:    1 * time.Second,
		BuildsInterval: 3 * time.Second,
		ServerInterval: 5 * time.Second,
		FrameInterval:  100 * time.Millisecond,
		Sound:          false,
		MinWidth:       60,
		MinHeight:      16,
	}
}

// DefaultProfileTimeout bounds requests for profiles that don't set one.
const DefaultProfileTimeout = 10 * time.Second
