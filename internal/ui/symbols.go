package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Build or stage passed
	SymbolFail     = "✗" // Build or stage failed
	SymbolPending  = "○" // Not started or queued
	SymbolProgress = "◐" // Running (static fallback for the spinner)
	SymbolWarning  = "▲" // Unstable
	SymbolSkipped  = "⊘" // Aborted or not built
	SymbolPaused   = "‖" // Waiting for input
	SymbolUnknown  = "?" // Anything the server reported that we don't recognize
)
