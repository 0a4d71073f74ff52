// Package output formats build console logs for the terminal.
package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ismet55555/yojenkins-sub000/internal/ui"
)

// Formatter processes console log lines for display.
type Formatter interface {
	// Name returns the formatter identifier.
	Name() string

	// ProcessLine transforms a single line of output.
	// ANSI codes should pass through unchanged.
	ProcessLine(line string) string
}

// StyleFunc returns the style for a build result such as "SUCCESS".
type StyleFunc func(result string) lipgloss.Style

// ConsoleFormatter highlights the interesting parts of a build console log:
// error lines, pipeline markers and the final result line.
type ConsoleFormatter struct {
	errorStyle    lipgloss.Style
	pipelineStyle lipgloss.Style
	resultStyle   StyleFunc
}

// NewConsoleFormatter creates a formatter that styles "Finished: X" lines
// with resultStyle.
func NewConsoleFormatter(resultStyle StyleFunc) *ConsoleFormatter {
	return &ConsoleFormatter{
		errorStyle:    lipgloss.NewStyle().Foreground(ui.ColorError),
		pipelineStyle: lipgloss.NewStyle().Foreground(ui.ColorMuted),
		resultStyle:   resultStyle,
	}
}

// Name returns "console".
func (f *ConsoleFormatter) Name() string {
	return "console"
}

// ProcessLine styles a single console line.
func (f *ConsoleFormatter) ProcessLine(line string) string {
	if result, ok := finishedResult(line); ok && f.resultStyle != nil {
		return f.resultStyle(result).Render(line)
	}
	if isErrorLine(line) {
		return f.errorStyle.Render(line)
	}
	if strings.HasPrefix(line, "[Pipeline]") {
		return f.pipelineStyle.Render(line)
	}
	return line
}

// finishedResult extracts the result from the "Finished: SUCCESS" line every
// console log ends with.
func finishedResult(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "Finished: ")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// isErrorLine checks if a line appears to be an error message.
func isErrorLine(line string) bool {
	lower := strings.ToLower(line)
	trimmed := strings.TrimSpace(lower)

	errorPrefixes := []string{
		"error:",
		"error ",
		"fatal:",
		"fatal ",
		"panic:",
		"exception:",
		"fail:",
		"failed:",
	}

	for _, prefix := range errorPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	// All-caps ERROR anywhere, as Maven and friends print it
	if strings.Contains(line, "ERROR") {
		return true
	}

	return strings.HasPrefix(strings.TrimSpace(line), "FAILED")
}

// PassthroughFormatter passes all lines through unchanged.
type PassthroughFormatter struct{}

// NewPassthroughFormatter creates a no-op formatter.
func NewPassthroughFormatter() *PassthroughFormatter {
	return &PassthroughFormatter{}
}

// Name returns "passthrough".
func (f *PassthroughFormatter) Name() string {
	return "passthrough"
}

// ProcessLine returns the line unchanged.
func (f *PassthroughFormatter) ProcessLine(line string) string {
	return line
}
