package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/keshon/svcs/internal/hash"
)

// configName is the settings file name without extension.
const configName = ".svcs"

// configType is the settings file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for svcs settings.
const envPrefix = "SVCS"

const (
	DefaultLogLevel = "warn"
	DefaultLock     = true
	DefaultProgress = false
)

// Sentinel validation errors.
var (
	ErrInvalidRepoDir  = errors.New("repo_dir must not be empty")
	ErrInvalidHash     = errors.New("unsupported hash algorithm")
	ErrInvalidLogLevel = errors.New("unsupported log level")
)

// Settings are the process-level knobs, loaded once at startup.
type Settings struct {
	RepoDir  string `mapstructure:"repo_dir"`
	Hash     string `mapstructure:"hash"`
	LogLevel string `mapstructure:"log_level"`
	Lock     bool   `mapstructure:"lock"`
	Progress bool   `mapstructure:"progress"`
}

// LoadSettings loads settings from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit settings file path.
// Otherwise .svcs.yaml is searched in CWD and $HOME.
// A missing settings file is not an error; defaults are used.
func LoadSettings(configPath string) (*Settings, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return &s, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("repo_dir", DefaultRepoDir)
	v.SetDefault("hash", hash.Default)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("lock", DefaultLock)
	v.SetDefault("progress", DefaultProgress)
}

// Validate checks the settings for unsupported values.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.RepoDir) == "" {
		return ErrInvalidRepoDir
	}
	if !slices.Contains(hash.Algorithms(), s.Hash) {
		return fmt.Errorf("%w: %q", ErrInvalidHash, s.Hash)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a settings log level onto slog.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
	return l, nil
}
