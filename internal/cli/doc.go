// Package cli implements the yojenkins command-line interface.
//
// Each Cobra command resolves configuration and then hands off to the
// packages that do the work:
//
//   - internal/config resolves the profile and monitor settings
//   - internal/jenkins builds the client for that profile
//   - internal/monitor runs the live dashboard
//
// # Command Structure
//
//	yojenkins build monitor [BUILD_URL]  - Live dashboard for one build
//	yojenkins job monitor [JOB_URL]      - Live dashboard for a job
//	yojenkins config show                - Print the effective profile
//	yojenkins version                    - Print version information
//	yojenkins completion <shell>         - Generate shell completions
//
// # Flag Handling
//
// Global flags (--config, --profile, --debug, --no-color, --log-file) live on
// the root command. The monitors add --sound and their polling interval
// flags through AddMonitorFlags; flag values override the config file and
// are validated with the same rules.
//
// # Errors
//
// Commands return structured errors from internal/errors. Execute prints
// them with their suggestion and exits 1.
package cli
