package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ismet55555/yojenkins-sub000/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the project-local config file name.
	ConfigFileName = ".yojenkins.yaml"
	// GlobalConfigDir is the directory for global config, relative to $HOME.
	GlobalConfigDir = ".config/yojenkins"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is the prefix of environment variables that override profile fields.
	EnvPrefix = "YOJENKINS"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Create "+ConfigFileName+" or point at one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .yojenkins.yaml in current directory
// 3. ~/.config/yojenkins/config.yaml (global)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if none exists.
// Running without a file is fine as long as the environment supplies a server.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		return DefaultConfig(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setMonitorDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}

	return cfg, nil
}

// setMonitorDefaults registers defaults so partially specified monitor
// sections still pick up sane intervals.
func setMonitorDefaults(v *viper.Viper) {
	d := DefaultMonitorConfig()
	v.SetDefault("default_profile", "default")
	v.SetDefault("monitor.build_interval", d.BuildInterval.String())
	v.SetDefault("monitor.stages_interval", d.StagesInterval.String())
	v.SetDefault("monitor.job_interval", d.JobInterval.String())
	v.SetDefault("monitor.builds_interval", d.BuildsInterval.String())
	v.SetDefault("monitor.server_interval", d.ServerInterval.String())
	v.SetDefault("monitor.frame_interval", d.FrameInterval.String())
	v.SetDefault("monitor.sound", d.Sound)
	v.SetDefault("monitor.min_width", d.MinWidth)
	v.SetDefault("monitor.min_height", d.MinHeight)
}

// ResolveProfile picks the profile to use and applies environment overrides.
// Name selection order: explicit name, YOJENKINS_PROFILE, default_profile.
// YOJENKINS_SERVER_URL, YOJENKINS_USERNAME and YOJENKINS_API_TOKEN override the
// matching profile fields, which also allows running with no config file at all.
func ResolveProfile(cfg *Config, name string) (string, Profile, error) {
	env := viper.New()
	env.SetEnvPrefix(EnvPrefix)
	env.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	env.AutomaticEnv()

	if name == "" {
		name = env.GetString("profile")
	}
	if name == "" {
		name = cfg.DefaultProfile
	}
	name = strings.ToLower(name)

	profile, found := cfg.Profiles[name]

	if s := env.GetString("server_url"); s != "" {
		profile.ServerURL = s
		found = true
	}
	if s := env.GetString("username"); s != "" {
		profile.Username = s
	}
	if s := env.GetString("api_token"); s != "" {
		profile.APIToken = s
	}

	if !found {
		return name, Profile{}, errors.New(errors.ErrConfig,
			"Profile '"+name+"' not found",
			availableProfilesHint(cfg))
	}

	if profile.Timeout <= 0 {
		profile.Timeout = DefaultProfileTimeout
	}

	if err := ValidateProfile(name, profile); err != nil {
		return name, Profile{}, err
	}
	return name, profile, nil
}

func availableProfilesHint(cfg *Config) string {
	if len(cfg.Profiles) == 0 {
		return "Add a profile under 'profiles:' in " + ConfigFileName + " or set " + EnvPrefix + "_SERVER_URL"
	}
	names := make([]string, 0, len(cfg.Profiles))
	for n := range cfg.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return "Available profiles: " + strings.Join(names, ", ")
}
