// Package ui holds the terminal styling shared by the CLI and the monitor.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess (green)  - Successful builds and stages
//	ColorError   (red)    - Failures
//	ColorWarning (yellow) - Unstable results
//	ColorRunning (blue)   - Builds in progress
//	ColorInfo    (cyan)   - Queued and pending items
//	ColorMuted   (gray)   - Aborted items, secondary text
//
// Use DisableColors() to switch to monochrome output (for --no-color).
//
// # Prompts
//
// PromptTarget asks for a build or job URL with a Huh form when the user
// runs a monitor command without one on an interactive terminal.
package ui
