package internal

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the completion backend
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// TimeoutDuration parses Timeout, falling back to one minute
func (c LLMConfig) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return time.Minute
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		LogWarn("invalid llm.timeout %q, using 1m", c.Timeout)
		return time.Minute
	}
	return d
}

// StorageConfig locates the board database and archive directory
type StorageConfig struct {
	Path       string `yaml:"path"`
	ArchiveDir string `yaml:"archive_dir"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the stickyboard configuration file
type Config struct {
	LLM      LLMConfig     `yaml:"llm"`
	Storage  StorageConfig `yaml:"storage"`
	Viewport Viewport      `yaml:"viewport"`
	Server   ServerConfig  `yaml:"server"`
}

// DefaultConfigDir returns ~/.stickyboard
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stickyboard"
	}
	return filepath.Join(home, ".stickyboard")
}

// DefaultConfigPath returns the default location of config.yaml
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() Config {
	dir := DefaultConfigDir()
	return Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4-turbo",
			BaseURL:  "https://api.openai.com/v1",
			Timeout:  "1m",
		},
		Storage: StorageConfig{
			Path:       filepath.Join(dir, "board.db"),
			ArchiveDir: filepath.Join(dir, "archive"),
		},
		Viewport: Viewport{Width: 1000, Height: 800},
		Server:   ServerConfig{Addr: "127.0.0.1:8787"},
	}
}

// LoadConfig reads a YAML config file on top of the defaults and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg, err := LoadFileConfig(path)
	if err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFileConfig reads the defaults and the YAML file only. Use it as the
// base for Save so environment overrides are never written to disk.
func LoadFileConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		LogDebug("no config file at %s, using defaults", path)
	case err != nil:
		return Config{}, &ConfigError{Path: path, Err: err}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, &ConfigError{Path: path, Err: err}
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STICKYBOARD_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("STICKYBOARD_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("STICKYBOARD_API_KEY"); v != "" {
		c.LLM.APIKey = v
		return
	}
	if c.LLM.APIKey != "" {
		return
	}
	switch c.LLM.Provider {
	case "gemini":
		c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// Save writes the config as YAML
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}
