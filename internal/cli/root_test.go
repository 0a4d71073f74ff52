package cli

import (
	"bytes"
	"errors"
	"testing"

	yjerrors "github.com/ismet55555/yojenkins-sub000/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  errors.New(`unknown command "foo" for "yojenkins"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  errors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  errors.New(`unknown command "foo" for "yojenkins"`),
			want: "foo",
		},
		{
			name: "command with hyphen",
			err:  errors.New(`unknown command "my-cmd" for "yojenkins"`),
			want: "my-cmd",
		},
		{
			name: "no quotes returns empty",
			err:  errors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  errors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "structured error printed as-is",
			err:  yjerrors.New(yjerrors.ErrConfig, "Profile 'prod' not found", "Available profiles: default"),
			want: []string{"✗ Profile 'prod' not found", "Available profiles: default"},
		},
		{
			name: "unknown command gets a suggestion",
			err:  errors.New(`unknown command "moniter" for "yojenkins"`),
			want: []string{"'moniter' isn't a yojenkins command"},
		},
		{
			name: "plain error is wrapped",
			err:  errors.New("boom"),
			want: []string{"✗ Command failed", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"build", "job", "config", "version", "completion"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestRootPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "profile", "debug", "no-color", "log-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}
}
