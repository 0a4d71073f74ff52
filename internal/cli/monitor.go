package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ismet55555/yojenkins-sub000/internal/config"
	"github.com/ismet55555/yojenkins-sub000/internal/errors"
	"github.com/ismet55555/yojenkins-sub000/internal/jenkins"
	"github.com/ismet55555/yojenkins-sub000/internal/logger"
	"github.com/ismet55555/yojenkins-sub000/internal/monitor"
	"github.com/ismet55555/yojenkins-sub000/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// defaultLogFile is where logs go while a monitor owns the terminal.
const defaultLogFile = "yojenkins-monitor.log"

var (
	buildMonitorFlags MonitorFlags
	jobMonitorFlags   MonitorFlags
)

// Swapped out in tests.
var (
	isInteractive = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	promptTarget = ui.PromptTarget
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Work with builds",
}

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Work with jobs",
}

var buildMonitorCmd = &cobra.Command{
	Use:   "monitor [BUILD_URL]",
	Short: "Live dashboard for a single build",
	Long: `Watch a build in a live terminal dashboard.

BUILD_URL is a full build URL or a job path with a build number, resolved
against the profile's server. Without it you'll be asked for one.

Keyboard shortcuts:
  q / Ctrl+C  Quit (press twice)
  p           Pause or resume polling
  h / ?       Show help
  a           Abort the build (press twice)
  o           Open the build in a browser
  s           Toggle the finish sound
  l           Quit and stream the console log
  r / Esc     Resume and cancel any confirmation

Examples:
  yojenkins build monitor https://ci.example.com/job/app/42/
  yojenkins build monitor folder/app/42 --sound
  yojenkins build monitor app/42 --interval-build 500ms`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd.Context(), monitor.KindBuild, firstArg(args), buildMonitorFlags)
	},
}

var jobMonitorCmd = &cobra.Command{
	Use:   "monitor [JOB_URL]",
	Short: "Live dashboard for a job and its recent builds",
	Long: `Watch a job in a live terminal dashboard.

JOB_URL is a full job URL or a job path like folder/app, resolved against
the profile's server. Without it you'll be asked for one.

Keyboard shortcuts:
  q / Ctrl+C  Quit (press twice)
  p           Pause or resume polling
  h / ?       Show help
  b           Trigger a new build (press twice)
  o           Open the job in a browser
  s           Toggle the finish sound
  r / Esc     Resume and cancel any confirmation

Examples:
  yojenkins job monitor https://ci.example.com/job/app/
  yojenkins job monitor folder/app --sound`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd.Context(), monitor.KindJob, firstArg(args), jobMonitorFlags)
	},
}

func init() {
	AddMonitorFlags(buildMonitorCmd, &buildMonitorFlags, monitor.KindBuild)
	AddMonitorFlags(jobMonitorCmd, &jobMonitorFlags, monitor.KindJob)

	buildCmd.AddCommand(buildMonitorCmd)
	jobCmd.AddCommand(jobMonitorCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(jobCmd)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// monitorSetup is everything resolved before the dashboard starts.
type monitorSetup struct {
	Profile string
	URL     string
	Client  *jenkins.Client
	Config  config.MonitorConfig
}

// prepareMonitor loads config, resolves the profile and the target URL, and
// builds the client.
func prepareMonitor(kind monitor.Kind, target string, flags MonitorFlags) (*monitorSetup, error) {
	cfg, _, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	name, profile, err := config.ResolveProfile(cfg, profileFlag)
	if err != nil {
		return nil, err
	}

	mcfg, err := flags.Apply(cfg.Monitor)
	if err != nil {
		return nil, err
	}

	if target == "" {
		if !isInteractive() {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("No %s given", kind),
				fmt.Sprintf("Pass the %s URL as an argument", kind))
		}
		target, err = promptTarget(kind.String())
		if err != nil {
			return nil, err
		}
	}

	url, err := resolveTarget(kind, profile.ServerURL, target)
	if err != nil {
		return nil, err
	}

	client, err := jenkins.NewClient(jenkins.Options{
		ServerURL: profile.ServerURL,
		Username:  profile.Username,
		Token:     profile.APIToken,
		Timeout:   profile.Timeout,
		Insecure:  profile.Insecure,
		Logger:    logger.NewEnvLogger("[jenkins]"),
	})
	if err != nil {
		return nil, err
	}

	return &monitorSetup{Profile: name, URL: url, Client: client, Config: mcfg}, nil
}

// resolveTarget turns a URL or job path into the URL of the right kind of
// resource. A build URL given to the job monitor watches its job.
func resolveTarget(kind monitor.Kind, serverURL, target string) (string, error) {
	url, err := jenkins.ResolveURL(serverURL, target)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a valid %s URL", target, kind),
			"Use a full URL or a job path like folder/app")
	}

	if kind == monitor.KindJob {
		return jenkins.JobURLFromBuild(url), nil
	}
	if !jenkins.IsBuildURL(url) {
		return "", errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' is a job, not a build", target),
			"Add the build number, or use 'yojenkins job monitor' to watch the job")
	}
	return url, nil
}

// monitorCommand runs the live monitor for one build or job.
func monitorCommand(ctx context.Context, kind monitor.Kind, target string, flags MonitorFlags) error {
	setup, err := prepareMonitor(kind, target, flags)
	if err != nil {
		return err
	}

	logPath := logFileFlag
	if logPath == "" {
		logPath = filepath.Join(os.TempDir(), defaultLogFile)
	}
	restore, err := logger.RedirectToFile(logPath)
	if err != nil {
		// Logging must never write over the dashboard.
		undo := logger.Discard()
		restore = func() error { undo(); return nil }
	}
	defer func() { _ = restore() }()

	log := logger.NewEnvLogger("[monitor]")
	log.Debug("profile %s, target %s", setup.Profile, setup.URL)

	opts := monitor.Options{
		Kind:   kind,
		Server: setup.Client,
		Config: setup.Config,
		Sound:  flags.Sound,
		Logger: log,
	}
	if kind == monitor.KindJob {
		opts.Job = setup.Client.JobAt(setup.URL)
	} else {
		opts.Build = setup.Client.BuildAt(setup.URL)
	}

	mon, err := monitor.New(opts)
	if err != nil {
		return err
	}

	outcome, err := mon.Run(ctx)
	if err != nil {
		return err
	}
	log.Debug("monitor ended: %s", outcome)
	return nil
}
