package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ismet55555/yojenkins-sub000/internal/errors"
	"github.com/ismet55555/yojenkins-sub000/internal/logger"
	"github.com/ismet55555/yojenkins-sub000/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile     string
	profileFlag string
	debugFlag   bool
	noColorFlag bool
	logFileFlag string
)

var rootCmd = &cobra.Command{
	Use:   "yojenkins",
	Short: "Jenkins from the command line",
	Long: `yojenkins talks to a Jenkins server from your terminal.

The live monitors poll a build or job in the background and redraw a
dashboard you can drive with single keys.

Examples:
  yojenkins build monitor https://ci.example.com/job/app/42/
  yojenkins job monitor folder/app --sound
  yojenkins config show --profile staging`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			logger.SetDebug(true)
		}
		if noColorFlag || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.yojenkins.yaml, then ~/.config/yojenkins/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "profile to use (default: default_profile or $YOJENKINS_PROFILE)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "where logs go while a monitor owns the terminal")
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes structured errors as-is and dresses up everything else
// in the same format.
func printError(w io.Writer, err error) {
	var yjErr *errors.Error
	if stderrors.As(err, &yjErr) {
		fmt.Fprint(w, yjErr.Error())
		return
	}
	if isUnknownCommandError(err) {
		suggestion := "Run 'yojenkins --help' to see available commands."
		if name := extractUnknownCommand(err); name != "" {
			suggestion = fmt.Sprintf("'%s' isn't a yojenkins command. Run 'yojenkins --help' to see available commands.", name)
		}
		fmt.Fprint(w, errors.New(errors.ErrConfig, err.Error(), suggestion).Error())
		return
	}
	fmt.Fprint(w, errors.Wrap(err, "Command failed").Error())
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "yojenkins"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
