// Package monitor implements the live terminal monitor for a single build or job.
//
// The monitor polls several remote resources concurrently while staying
// responsive to the keyboard. Nothing slow ever runs on the render loop.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: the UI state, key table and read access to the snapshots
//   - Update: processes frame ticks, keystrokes and action results
//   - View: renders the current snapshots to a string via Renderer
//
// # Key Components
//
//	Snapshot  - Latest value of one resource, guarded by an RWMutex
//	Poller    - Goroutine that refreshes one Snapshot on its own interval
//	UIState   - Dispatcher state machine (arm/commit for destructive keys)
//	Renderer  - Pure Frame -> string transformation with overlays
//	Monitor   - Orchestrator that owns the pollers and the Bubble Tea program
//
// # Message Flow
//
//  1. Pollers write snapshots in the background (server, build, stages or job, builds)
//  2. frameMsg fires at the frame interval (default 100ms) and View reads every slot
//  3. tea.KeyMsg is mapped to an Action and fed to UIState.Dispatch
//  4. Effects (abort, trigger, open) run as tea.Cmds and report back as actionResultMsg
//
// Pausing flips a PauseGate that every poller checks before fetching and
// before publishing, so no snapshot changes while paused.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C  - Quit (press twice)
//	p          - Pause / unpause polling
//	h          - Toggle help overlay
//	a          - Abort build (press twice, build monitor)
//	b          - Trigger build (press twice, job monitor)
//	o          - Open in browser
//	s          - Toggle finish sound
//	l          - Exit and stream logs (build monitor)
//	r, Esc     - Resume: cancel confirmations, unpause, close help
package monitor
