// Package config loads application settings from defaults, an optional
// YAML file, FINFLUENCY_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/finfluency/internal/llm"
)

// EnvPrefix is prepended to every environment variable, e.g.
// FINFLUENCY_DB_PATH or FINFLUENCY_LOG_LEVEL.
const EnvPrefix = "FINFLUENCY"

// Config holds all application configuration.
type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Tutor   TutorConfig   `mapstructure:"tutor"`
	History HistoryConfig `mapstructure:"history"`
}

// DBConfig locates the progress database.
type DBConfig struct {
	// Path is empty until resolved; callers fall back to the default
	// data directory.
	Path string `mapstructure:"path"`
	// Ephemeral keeps progress in memory for the run.
	Ephemeral bool `mapstructure:"ephemeral"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	File       string `mapstructure:"file" validate:"required"`
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gt=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// TutorConfig selects the optional AI tutor. An empty provider means the
// standard API key variables are probed instead.
type TutorConfig struct {
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock off"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// HistoryConfig bounds the activity log.
type HistoryConfig struct {
	// Keep is how many activity entries survive the prune at startup.
	// Zero disables pruning.
	Keep int `mapstructure:"keep" validate:"gte=0"`
}

// Options tells Load where to look beyond the defaults.
type Options struct {
	// File is an explicit config file. When empty, config.yaml is looked
	// up in the user config directory and may be absent.
	File string
	// Flags are bound over every other source. Recognized flag names are
	// listed in FlagKeys.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"db":        "db.path",
	"ephemeral": "db.ephemeral",
	"log-level": "log.level",
}

// Load resolves the configuration and validates it.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with no file, env or flags applied.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config:\n  %s", strings.Join(msgs, "\n  "))
}

// LLM converts the tutor settings into a provider configuration. ok is
// false when no tutor should run.
func (t TutorConfig) LLM() (cfg llm.Config, ok bool) {
	switch t.Provider {
	case "off":
		return llm.Config{}, false
	case "":
		cfg, ok = llm.DiscoverConfig()
	default:
		cfg, ok = llm.DefaultConfig(t.Provider), true
	}
	if !ok {
		return cfg, false
	}
	if t.Model != "" {
		cfg.Model = t.Model
	}
	if t.APIKey != "" {
		cfg.APIKey = t.APIKey
	}
	if t.Timeout > 0 {
		cfg.Timeout = t.Timeout
	}
	return cfg, true
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", "")
	v.SetDefault("db.ephemeral", false)

	v.SetDefault("log.file", filepath.Join(stateDir(), "finfluency.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)

	v.SetDefault("tutor.provider", "")
	v.SetDefault("tutor.model", "")
	v.SetDefault("tutor.api_key", "")
	v.SetDefault("tutor.timeout", 30*time.Second)

	v.SetDefault("history.keep", 1000)
}

// Dir returns the directory searched for config.yaml:
// $XDG_CONFIG_HOME/finfluency, or the platform config directory.
func Dir() (string, error) {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "finfluency"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "finfluency"), nil
}

// stateDir returns $XDG_STATE_HOME/finfluency, falling back to
// ~/.local/state/finfluency, or the temp dir when home is unknown.
func stateDir() string {
	if x := os.Getenv("XDG_STATE_HOME"); x != "" {
		return filepath.Join(x, "finfluency")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "finfluency")
	}
	return filepath.Join(home, ".local", "state", "finfluency")
}
