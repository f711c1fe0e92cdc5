package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STICKYBOARD_MODEL", "STICKYBOARD_DB", "STICKYBOARD_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LLM.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.LLM.Provider)
	}
	if cfg.Viewport != (Viewport{Width: 1000, Height: 800}) {
		t.Errorf("Viewport = %+v, want 1000x800", cfg.Viewport)
	}
	if filepath.Base(cfg.Storage.Path) != "board.db" {
		t.Errorf("Storage.Path = %q, want board.db", cfg.Storage.Path)
	}
	if cfg.Server.Addr == "" {
		t.Error("Server.Addr should have a default")
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name:    "missing file uses defaults",
			content: "",
			check: func(t *testing.T, cfg Config) {
				if cfg.LLM.Model != DefaultConfig().LLM.Model {
					t.Errorf("Model = %q", cfg.LLM.Model)
				}
			},
		},
		{
			name: "yaml overrides defaults",
			content: `llm:
  provider: gemini
  model: gemini-1.5-flash
viewport:
  width: 1920
  height: 1080
`,
			check: func(t *testing.T, cfg Config) {
				if cfg.LLM.Provider != "gemini" || cfg.LLM.Model != "gemini-1.5-flash" {
					t.Errorf("LLM = %+v", cfg.LLM)
				}
				if cfg.Viewport != (Viewport{Width: 1920, Height: 1080}) {
					t.Errorf("Viewport = %+v", cfg.Viewport)
				}
				if cfg.Server.Addr != DefaultConfig().Server.Addr {
					t.Errorf("Server.Addr = %q, unset keys should keep defaults", cfg.Server.Addr)
				}
			},
		},
		{
			name:    "environment overrides file",
			content: "llm:\n  model: from-file\n",
			env: map[string]string{
				"STICKYBOARD_MODEL":   "from-env",
				"STICKYBOARD_DB":      "/tmp/env.db",
				"STICKYBOARD_API_KEY": "sk-env",
				"OPENAI_API_KEY":      "sk-ignored",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.LLM.Model != "from-env" || cfg.Storage.Path != "/tmp/env.db" || cfg.LLM.APIKey != "sk-env" {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
		{
			name:    "provider key fallback",
			content: "llm:\n  provider: gemini\n",
			env:     map[string]string{"GEMINI_API_KEY": "gm-key", "OPENAI_API_KEY": "sk-key"},
			check: func(t *testing.T, cfg Config) {
				if cfg.LLM.APIKey != "gm-key" {
					t.Errorf("APIKey = %q, want gm-key", cfg.LLM.APIKey)
				}
			},
		},
		{
			name:    "explicit key wins over provider env",
			content: "llm:\n  api_key: from-file\n",
			env:     map[string]string{"OPENAI_API_KEY": "sk-key"},
			check: func(t *testing.T, cfg Config) {
				if cfg.LLM.APIKey != "from-file" {
					t.Errorf("APIKey = %q, want from-file", cfg.LLM.APIKey)
				}
			},
		},
		{
			name:    "invalid yaml",
			content: "llm: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("LoadConfig() error = %v, want ConfigError", err)
				}
				if cfgErr.Path != path {
					t.Errorf("ConfigError.Path = %q, want %q", cfgErr.Path, path)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestConfigSave(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Viewport = Viewport{Width: 640, Height: 480}
	cfg.LLM.Model = "gpt-4o-mini"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "gpt-4o-mini") {
		t.Errorf("saved config = %q", data)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Viewport != cfg.Viewport || loaded.LLM.Model != cfg.LLM.Model {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{"", time.Minute},
		{"30s", 30 * time.Second},
		{"not-a-duration", time.Minute},
		{"-5s", time.Minute},
	}

	for _, tt := range tests {
		if got := (LLMConfig{Timeout: tt.timeout}).TimeoutDuration(); got != tt.want {
			t.Errorf("TimeoutDuration(%q) = %v, want %v", tt.timeout, got, tt.want)
		}
	}
}

func TestLoadFileConfigSkipsEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("STICKYBOARD_DB", "/tmp/env.db")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  path: /data/board.db\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if cfg.LLM.APIKey != "" || cfg.Storage.Path != "/data/board.db" {
		t.Errorf("LoadFileConfig() = %+v, environment overrides should not apply", cfg)
	}

	full, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if full.LLM.APIKey != "sk-env" || full.Storage.Path != "/tmp/env.db" {
		t.Errorf("LoadConfig() = %+v, environment overrides should apply", full)
	}
}
