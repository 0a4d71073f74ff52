package config

import (
	"testing"
	"time"

	"github.com/ismet55555/yojenkins-sub000/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name        string
		profile     Profile
		wantErr     bool
		errContains string
	}{
		{
			name:    "authenticated profile",
			profile: Profile{ServerURL: "https://ci.example.com/", Username: "ada", APIToken: "11abc"},
		},
		{
			name:    "anonymous profile",
			profile: Profile{ServerURL: "http://localhost:8080"},
		},
		{
			name:        "missing server url",
			profile:     Profile{Username: "ada", APIToken: "t"},
			wantErr:     true,
			errContains: "no server_url",
		},
		{
			name:        "server url without scheme",
			profile:     Profile{ServerURL: "ci.example.com"},
			wantErr:     true,
			errContains: "invalid server_url",
		},
		{
			name:        "unsupported scheme",
			profile:     Profile{ServerURL: "ftp://ci.example.com"},
			wantErr:     true,
			errContains: "invalid server_url",
		},
		{
			name:        "token without username",
			profile:     Profile{ServerURL: "https://ci.example.com", APIToken: "t"},
			wantErr:     true,
			errContains: "both username and api_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile("work", tt.profile)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidate_Monitor(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(m *MonitorConfig)
		errContains string
	}{
		{
			name:   "defaults are valid",
			mutate: func(m *MonitorConfig) {},
		},
		{
			name:        "build interval too small",
			mutate:      func(m *MonitorConfig) { m.BuildInterval = 10 * time.Millisecond },
			errContains: "monitor.build_interval",
		},
		{
			name:        "server interval zero",
			mutate:      func(m *MonitorConfig) { m.ServerInterval = 0 },
			errContains: "monitor.server_interval",
		},
		{
			name:        "frame interval too small",
			mutate:      func(m *MonitorConfig) { m.FrameInterval = time.Millisecond },
			errContains: "monitor.frame_interval",
		},
		{
			name:        "min width too small",
			mutate:      func(m *MonitorConfig) { m.MinWidth = 10 },
			errContains: "monitor.min_width",
		},
		{
			name:        "min height too small",
			mutate:      func(m *MonitorConfig) { m.MinHeight = 2 },
			errContains: "monitor.min_height",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg.Monitor)

			err := Validate(cfg)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidate_FutureVersion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = CurrentConfigVersion + 1

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from the future")
}

func TestValidate_BadProfile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Profiles["broken"] = Profile{ServerURL: "nope"}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
