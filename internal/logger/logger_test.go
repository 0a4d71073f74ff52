package logger

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{
			name:      "logs when YOJENKINS_DEBUG is set",
			envValue:  "1",
			expectLog: true,
		},
		{
			name:      "logs when YOJENKINS_DEBUG is any value",
			envValue:  "true",
			expectLog: true,
		},
		{
			name:      "does not log when YOJENKINS_DEBUG is empty",
			envValue:  "",
			expectLog: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Capture log output
			var buf bytes.Buffer
			log.SetOutput(&buf)
			defer log.SetOutput(os.Stderr)

			// Set environment
			if tt.envValue != "" {
				t.Setenv("YOJENKINS_DEBUG", tt.envValue)
			} else {
				os.Unsetenv("YOJENKINS_DEBUG")
			}

			l := NewEnvLogger("[test]")
			l.Debug("test message %s", "arg")

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[test] test message arg")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestSetDebug_ForcesDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	os.Unsetenv(DebugEnv)

	SetDebug(true)
	defer SetDebug(false)

	NewEnvLogger("[forced]").Debug("visible")
	assert.Contains(t, buf.String(), "[forced] visible")
	assert.True(t, DebugEnabled())
}

func TestRedirectToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "monitor.log")

	restore, err := RedirectToFile(path)
	require.NoError(t, err)

	NewEnvLogger("[file]").Info("written to file")
	require.NoError(t, restore())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[file] written to file")
}

func TestDiscard(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	restore := Discard()
	NewEnvLogger("[gone]").Info("hidden")
	restore()
	NewEnvLogger("[back]").Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Warn("worker %d iteration %d", i, j)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, l.Entries(), 400)
	assert.True(t, l.HasLevel("warn"))
}

// captureLog points the standard logger at a buffer for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(previous) })
	return &buf
}

func TestEnvLogger_Levels(t *testing.T) {
	tests := []struct {
		name string
		emit func(Logger)
		want string
	}{
		{"info", func(l Logger) { l.Info("polling %s every %ds", "build", 2) }, "[poller] polling build every 2s"},
		{"warn", func(l Logger) { l.Warn("fetch failed: %v", "timeout") }, "[poller] WARN: fetch failed: timeout"},
		{"error", func(l Logger) { l.Error("panic in %s", "stages") }, "[poller] ERROR: panic in stages"},
		{"float verbs", func(l Logger) { l.Info("progress %.2f", 0.4567) }, "[poller] progress 0.46"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			tt.emit(NewEnvLogger("[poller]"))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNoopLogger(t *testing.T) {
	buf := captureLog(t)
	SetDebug(true)
	defer SetDebug(false)

	l := Noop()
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	assert.Empty(t, buf.String())
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()
	assert.False(t, l.HasLevel("warn"))

	l.Debug("cycle %d", 1)
	l.Warn("server %s unreachable", "ci.example.com")
	l.Error("abort failed")

	assert.Equal(t, []LogMessage{
		{Level: "debug", Message: "cycle 1"},
		{Level: "warn", Message: "server ci.example.com unreachable"},
		{Level: "error", Message: "abort failed"},
	}, l.Entries())
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("info"))

	l.Clear()
	assert.Empty(t, l.Entries())
}

func TestDefault(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	require.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("via default")

	assert.Same(t, buf, Default())
	assert.True(t, buf.HasLevel("info"))
}

var (
	_ Logger = (*envLogger)(nil)
	_ Logger = (*noopLogger)(nil)
	_ Logger = (*BufferLogger)(nil)
)
