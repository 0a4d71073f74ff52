package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShow(t *testing.T) {
	useConfig(t, testConfig, "")

	var buf bytes.Buffer
	require.NoError(t, configShowCommand(&buf))

	out := buf.String()
	assert.Contains(t, out, "profile: default")
	assert.Contains(t, out, "server_url: https://ci.example.com/")
	assert.Contains(t, out, "username: alice")
	assert.Contains(t, out, "********33cc")
	assert.NotContains(t, out, "11aa22bb33cc")
	assert.Contains(t, out, "build_interval: 2s")
	assert.Contains(t, out, "stages_interval: 2s")
}

func TestConfigShow_EnvironmentOverride(t *testing.T) {
	useConfig(t, testConfig, "staging")
	t.Setenv("YOJENKINS_SERVER_URL", "https://override.example.com/")

	var buf bytes.Buffer
	require.NoError(t, configShowCommand(&buf))
	assert.Contains(t, buf.String(), "server_url: https://override.example.com/")
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", ""},
		{"abc", "****"},
		{"abcd", "****"},
		{"11aa22bb33cc", "********33cc"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, maskToken(tt.token))
		})
	}
}
