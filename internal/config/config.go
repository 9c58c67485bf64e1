// Package config loads funlet.yaml, the optional per-project settings
// file for the funlet command line tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that overrides config
// discovery with an explicit funlet.yaml path.
const EnvConfigPath = "FUNLET_CONFIG"

// Config represents the top-level funlet.yaml configuration.
type Config struct {
	// Prompt is the string printed before each REPL read.
	// Defaults to ">> ".
	Prompt string `yaml:"prompt,omitempty"`

	// History is the path to the REPL history database. Relative paths
	// are resolved against the directory containing funlet.yaml.
	// Defaults to .funlet_history.db in the user's home directory.
	History string `yaml:"history,omitempty"`

	// NoColor disables ANSI colors in diagnostics and REPL output.
	NoColor bool `yaml:"no_color,omitempty"`

	// Trace enables per-instruction execution tracing on stderr.
	Trace bool `yaml:"trace,omitempty"`

	// Disasm prints the compiled bytecode listing before execution.
	Disasm bool `yaml:"disasm,omitempty"`
}

// Default returns the configuration used when no funlet.yaml exists.
func Default() *Config {
	return &Config{Prompt: DefaultPrompt}
}

// LoadConfig reads and parses a funlet.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses funlet.yaml content from bytes.
// The path argument is used for error messages and for resolving
// relative paths inside the config.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults(path)
	return &cfg, nil
}

// FindConfig searches for funlet.yaml starting from dir and walking up
// to parent directories, similar to how .gitignore is found.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "funlet.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		// Also check funlet.yml (common alternative)
		candidate = filepath.Join(dir, "funlet.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// Resolve locates and loads the effective configuration for dir.
// EnvConfigPath overrides discovery; when discovery finds nothing the
// defaults are returned.
func Resolve(dir string) (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return LoadConfig(path)
	}

	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadConfig(path)
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.History != "" {
		historyPath := c.History
		if !filepath.IsAbs(historyPath) {
			historyPath = filepath.Join(filepath.Dir(path), historyPath)
		}
		// The database may not exist yet, but it cannot be a directory.
		if info, err := os.Stat(historyPath); err == nil && info.IsDir() {
			return fmt.Errorf("%s: history %q is a directory", path, c.History)
		}
	}
	return nil
}

// setDefaults fills in default values for omitted fields and resolves
// relative paths against the config's own directory.
func (c *Config) setDefaults(path string) {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.History != "" && !filepath.IsAbs(c.History) {
		c.History = filepath.Join(filepath.Dir(path), c.History)
	}
}

// HistoryPath returns the history database location, falling back to
// HistoryFileName in the user's home directory. The result is empty
// when no path is configured and no home directory can be determined.
func (c *Config) HistoryPath() string {
	if c.History != "" {
		return c.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HistoryFileName)
}
