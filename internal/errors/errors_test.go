package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrAuth,
		ErrServer,
		ErrRequest,
		ErrMonitor,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "No server URL configured",
			suggestion: "Set server_url in your profile",
		},
		{
			name:       "auth error",
			code:       ErrAuth,
			message:    "Server rejected the API token",
			suggestion: "Generate a new token in the server's user settings",
		},
		{
			name:       "monitor error",
			code:       ErrMonitor,
			message:    "Monitor needs an interactive terminal",
			suggestion: "Run the command from a terminal, not a pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name:          "basic error formatting",
			err:           New(ErrConfig, "Invalid configuration", "Check .yojenkins.yaml syntax"),
			expectedParts: []string{"✗", "Invalid configuration", "Check .yojenkins.yaml syntax"},
		},
		{
			name:          "error without suggestion",
			err:           New(ErrServer, "Server unreachable", ""),
			expectedParts: []string{"Server unreachable"},
			notExpected:   []string{"\n\n  \n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, "Request failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrRequest, wrapped.Code, "Wrap should default to ErrRequest code")
	assert.Equal(t, "Request failed", wrapped.Message)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("file not found")
	wrapped := WrapWithCode(cause, ErrConfig, "Failed to load config", "Create a config file")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrConfig, wrapped.Code)
	assert.Equal(t, "Create a config file", wrapped.Suggestion)
	assert.Contains(t, wrapped.Error(), "file not found")
}

func TestErrorsIsAndAs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := WrapWithCode(cause, ErrServer, "Server error", "")

	assert.True(t, errors.Is(wrapped, cause))

	var yjErr *Error
	require.True(t, errors.As(wrapped, &yjErr))
	assert.Equal(t, ErrServer, yjErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrAuth))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("dial tcp: i/o timeout"),
		ErrServer,
		"Cannot reach the server",
		"Check the server URL and your network",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"))
	assert.Contains(t, lines[0], "Cannot reach the server")
}

func TestForStatus(t *testing.T) {
	cause := errors.New("GET https://ci.example.com/job/app/api/json: 403 Forbidden")

	tests := []struct {
		status     int
		code       string
		suggestion string
	}{
		{http.StatusUnauthorized, ErrAuth, "API token"},
		{http.StatusForbidden, ErrAuth, "permission"},
		{http.StatusNotFound, ErrRequest, "renamed or deleted"},
		{http.StatusBadGateway, ErrServer, "try again"},
		{http.StatusConflict, ErrRequest, ""},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := ForStatus(cause, tt.status, "Could not load job")

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.status, err.Status)
			if tt.suggestion == "" {
				assert.Empty(t, err.Suggestion)
			} else {
				assert.Contains(t, err.Suggestion, tt.suggestion)
			}
			assert.True(t, errors.Is(err, cause))
		})
	}
}

func TestErrorShowsHTTPStatus(t *testing.T) {
	err := ForStatus(errors.New("boom"), http.StatusServiceUnavailable, "Could not load build")
	first := strings.Split(err.Error(), "\n")[0]
	assert.Equal(t, "✗ Could not load build (HTTP 503 Service Unavailable)", first)

	assert.NotContains(t, New(ErrConfig, "Bad config", "").Error(), "HTTP")
}
