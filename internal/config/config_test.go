package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// isolate points every lookup directory into a temp dir and clears
// FINFLUENCY_* variables the developer may have set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, EnvPrefix+"_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.MaxSizeMB != 10 {
		t.Errorf("log = %+v", cfg.Log)
	}
	if want := filepath.Join(dir, "state", "finfluency", "finfluency.log"); cfg.Log.File != want {
		t.Errorf("log file = %q, want %q", cfg.Log.File, want)
	}
	if cfg.DB.Path != "" || cfg.DB.Ephemeral {
		t.Errorf("db = %+v", cfg.DB)
	}
	if cfg.Tutor.Timeout != 30*time.Second {
		t.Errorf("tutor timeout = %v", cfg.Tutor.Timeout)
	}
	if cfg.History.Keep != 1000 {
		t.Errorf("history keep = %d", cfg.History.Keep)
	}
}

func TestLoad_FileEnvFlagPrecedence(t *testing.T) {
	dir := isolate(t)

	cfgDir := filepath.Join(dir, "config", "finfluency")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "db:\n  path: /from/file.db\nlog:\n  level: debug\n  max_backups: 9\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Path != "/from/file.db" || cfg.Log.Level != "debug" || cfg.Log.MaxBackups != 9 {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	t.Setenv("FINFLUENCY_DB_PATH", "/from/env.db")
	t.Setenv("FINFLUENCY_LOG_LEVEL", "warn")
	cfg, err = Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Path != "/from/env.db" || cfg.Log.Level != "warn" {
		t.Fatalf("env should override file: %+v", cfg)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.Bool("ephemeral", false, "")
	flags.String("log-level", "", "")
	if err := flags.Parse([]string{"--db", "/from/flag.db", "--ephemeral"}); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(Options{Flags: flags})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Path != "/from/flag.db" || !cfg.DB.Ephemeral {
		t.Errorf("flags should override env: %+v", cfg.DB)
	}
	// Unset flags do not mask lower sources.
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want warn from env", cfg.Log.Level)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("tutor:\n  provider: mock\n  timeout: 5s\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(Options{File: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tutor.Provider != "mock" || cfg.Tutor.Timeout != 5*time.Second {
		t.Errorf("tutor = %+v", cfg.Tutor)
	}

	if _, err := Load(Options{File: filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Error("a missing explicit file should be an error")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad level", map[string]string{"FINFLUENCY_LOG_LEVEL": "loud"}, "Config.Log.Level"},
		{"bad provider", map[string]string{"FINFLUENCY_TUTOR_PROVIDER": "skynet"}, "Config.Tutor.Provider"},
		{"negative keep", map[string]string{"FINFLUENCY_HISTORY_KEEP": "-1"}, "Config.History.Keep"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(Options{})
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %s", err, tc.want)
			}
		})
	}
}

func TestTutorLLM(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	if _, ok := (TutorConfig{Provider: "off"}).LLM(); ok {
		t.Error("off should disable the tutor")
	}
	if _, ok := (TutorConfig{}).LLM(); ok {
		t.Error("no provider and no keys should disable the tutor")
	}

	cfg, ok := TutorConfig{Provider: "openai", Model: "gpt-x", APIKey: "k", Timeout: time.Second}.LLM()
	if !ok {
		t.Fatal("openai tutor should be enabled")
	}
	if cfg.Provider != "openai" || cfg.Model != "gpt-x" || cfg.APIKey != "k" || cfg.Timeout != time.Second {
		t.Errorf("llm config = %+v", cfg)
	}

	t.Setenv("ANTHROPIC_API_KEY", "ak")
	cfg, ok = TutorConfig{}.LLM()
	if !ok || cfg.Provider != "anthropic" || cfg.APIKey != "ak" {
		t.Errorf("discovered = %q, %v", cfg.Provider, ok)
	}

	// An explicit provider without a key picks up its variable.
	cfg, _ = TutorConfig{Provider: "anthropic"}.LLM()
	if cfg.APIKey != "ak" || cfg.Model != "claude-haiku" {
		t.Errorf("anthropic config = %+v", cfg)
	}
}
