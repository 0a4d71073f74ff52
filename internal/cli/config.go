package cli

import (
	"io"
	"strings"

	"github.com/ismet55555/yojenkins-sub000/internal/config"
	"github.com/ismet55555/yojenkins-sub000/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect yojenkins configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective profile and monitor settings",
	Long: `Print the profile yojenkins would use, after environment overrides,
together with the monitor settings. The API token is masked.

Examples:
  yojenkins config show
  yojenkins config show --profile staging
  YOJENKINS_SERVER_URL=https://ci.example.com/ yojenkins config show`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// shownConfig is what `config show` prints.
type shownConfig struct {
	File           string `yaml:"config_file"`
	ProfileName    string `yaml:"profile"`
	config.Profile `yaml:",inline"`
	Monitor        config.MonitorConfig `yaml:"monitor"`
}

func configShowCommand(w io.Writer) error {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	name, profile, err := config.ResolveProfile(cfg, profileFlag)
	if err != nil {
		return err
	}
	profile.APIToken = maskToken(profile.APIToken)

	if path == "" {
		path = "(none, using environment)"
	}

	out, err := yaml.Marshal(shownConfig{File: path, ProfileName: name, Profile: profile, Monitor: cfg.Monitor})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to format config", "")
	}
	_, err = w.Write(out)
	return err
}

// maskToken keeps only the last four characters of a token.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}
