package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ismet55555/yojenkins-sub000/internal/logger"
	"github.com/ismet55555/yojenkins-sub000/internal/util"
)

// Player plays a named sound.
type Player interface {
	Play(ctx context.Context, name string) error
}

// CommandPlayer runs a user-configured shell command per sound, or rings the
// terminal bell when no command is set. "{sound}" in the command is replaced
// with the shell-quoted sound name.
type CommandPlayer struct {
	Command string
	Bell    io.Writer
}

// NewCommandPlayer returns a player for the configured sound_command.
func NewCommandPlayer(command string) *CommandPlayer {
	return &CommandPlayer{Command: command, Bell: os.Stderr}
}

// Play blocks until the command exits or ctx is cancelled.
func (p *CommandPlayer) Play(ctx context.Context, name string) error {
	if strings.TrimSpace(p.Command) == "" {
		if p.Bell == nil {
			return nil
		}
		_, err := io.WriteString(p.Bell, "\a")
		return err
	}

	cmdStr := strings.ReplaceAll(p.Command, "{sound}", util.ShellQuote(name))
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdStr)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("sound command %q: %w (%s)", cmdStr, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// sounder launches detached playback. Nothing waits on it and a failure only
// gets logged.
type sounder struct {
	player Player
	log    logger.Logger
}

// play starts the sound in its own goroutine unless shutdown already fired.
func (s sounder) play(ctx context.Context, name string) {
	if s.player == nil || name == "" || ctx.Err() != nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("sound %s panicked: %v", name, r)
			}
		}()
		if ctx.Err() != nil {
			return
		}
		if err := s.player.Play(ctx, name); err != nil && ctx.Err() == nil {
			s.log.Warn("play sound %s: %v", name, err)
		}
	}()
}
