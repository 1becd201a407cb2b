package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/assembly-guide/internal/outline"
	"github.com/Faultbox/assembly-guide/internal/tween"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Timing.SettleDelay != 250*time.Millisecond {
		t.Errorf("expected settle delay 250ms, got %v", cfg.Timing.SettleDelay)
	}
	if cfg.Timing.RestoreDuration != 400*time.Millisecond {
		t.Errorf("expected restore duration 400ms, got %v", cfg.Timing.RestoreDuration)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

assembly:
  scene: "glider/scene.toml"
  groups: "glider/groups.json"
  steps: "glider/steps.yaml"

timing:
  settle_delay: 100ms
  restore_duration: 1s

outline:
  color: "#00ff00"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || !cfg.Window.Fullscreen {
		t.Errorf("window = %+v", cfg.Window)
	}
	if !cfg.Window.VSync {
		t.Error("vsync should keep its default when the file omits it")
	}
	if cfg.Assembly.Scene != "glider/scene.toml" || cfg.Assembly.Groups != "glider/groups.json" {
		t.Errorf("assembly = %+v", cfg.Assembly)
	}
	if cfg.Timing.SettleDelay != 100*time.Millisecond || cfg.Timing.RestoreDuration != time.Second {
		t.Errorf("timing = %+v", cfg.Timing)
	}
	col, err := cfg.OutlineColor()
	if err != nil || col != outline.RGB(0, 255, 0) {
		t.Errorf("OutlineColor() = %v, %v", col, err)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "window:\n  width: not a number\n  invalid syntax here\n"},
		{"unknown key", "window:\n  widht: 800\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("defaults lost, width = %d", cfg.Window.Width)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"negative settle", func(c *Config) { c.Timing.SettleDelay = -time.Millisecond }, "settle_delay"},
		{"negative restore", func(c *Config) { c.Timing.RestoreDuration = -time.Second }, "restore_duration"},
		{"no scene", func(c *Config) { c.Assembly.Scene = "" }, "assembly.scene"},
		{"bad colour", func(c *Config) { c.Outline.Color = "orange" }, "outline.color"},
		{"bad ease", func(c *Config) { c.Timing.StagingEase = "bounce" }, "staging_ease"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestOutlineColorDefault(t *testing.T) {
	cfg := Default()
	cfg.Outline.Color = ""
	col, err := cfg.OutlineColor()
	if err != nil || col != outline.DefaultColor {
		t.Errorf("OutlineColor() = %v, %v; want default", col, err)
	}
}

func TestStagingEase(t *testing.T) {
	cfg := Default()
	cfg.Timing.StagingEase = "linear"
	ease, err := cfg.StagingEase()
	if err != nil || ease(0.3) != 0.3 {
		t.Errorf("StagingEase(linear) = %v", err)
	}

	cfg.Timing.StagingEase = ""
	ease, err = cfg.StagingEase()
	if err != nil || ease(0.25) != tween.Smoothstep(0.25) {
		t.Errorf("empty staging_ease should mean smoothstep, err = %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "document flags",
			setup: func() {
				*flagScene = "a/scene.yaml"
				*flagGroups = "a/groups.json"
				*flagSteps = "a/steps.toml"
			},
			verify: func(t *testing.T, cfg *Config) {
				want := AssemblyConfig{Scene: "a/scene.yaml", Groups: "a/groups.json", Steps: "a/steps.toml"}
				if cfg.Assembly != want {
					t.Errorf("assembly = %+v, want %+v", cfg.Assembly, want)
				}
			},
			teardown: func() {
				*flagScene = ""
				*flagGroups = ""
				*flagSteps = ""
			},
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file.
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("timing:\n  settle_delay: -1s\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Assembly.Steps = "custom/steps.yaml"
	cfg.Timing.SettleDelay = 75 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Assembly.Steps != "custom/steps.yaml" || loaded.Timing.SettleDelay != 75*time.Millisecond {
		t.Errorf("round trip lost values: %+v %+v", loaded.Assembly, loaded.Timing)
	}
}
