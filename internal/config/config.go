// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/assembly-guide/internal/outline"
	"github.com/Faultbox/assembly-guide/internal/tween"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Assembly AssemblyConfig `yaml:"assembly"`
	Timing   TimingConfig   `yaml:"timing"`
	Outline  OutlineConfig  `yaml:"outline"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AssemblyConfig points at the documents describing one assembly guide.
// Each path may be YAML, JSON or TOML.
type AssemblyConfig struct {
	Scene  string `yaml:"scene"`
	Groups string `yaml:"groups"`
	Steps  string `yaml:"steps"`
}

// TimingConfig holds the animation timing shared by every step.
type TimingConfig struct {
	SettleDelay     time.Duration `yaml:"settle_delay"`
	RestoreDuration time.Duration `yaml:"restore_duration"`
	StagingEase     string        `yaml:"staging_ease"` // linear, smoothstep, ease-in-out, ease-out
}

// OutlineConfig holds highlight defaults.
type OutlineConfig struct {
	Color string `yaml:"color"` // "#rrggbb" used when a step names no colour
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Assembly: AssemblyConfig{
			Scene:  "assets/scene.yaml",
			Groups: "assets/groups.yaml",
			Steps:  "assets/steps.yaml",
		},
		Timing: TimingConfig{
			SettleDelay:     250 * time.Millisecond,
			RestoreDuration: 400 * time.Millisecond,
			StagingEase:     "smoothstep",
		},
		Outline: OutlineConfig{
			Color: "#ffa600",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// OutlineColor parses the default highlight colour.
func (c *Config) OutlineColor() (outline.Color, error) {
	if c.Outline.Color == "" {
		return outline.DefaultColor, nil
	}
	col, err := outline.ParseColor(c.Outline.Color)
	if err != nil {
		return outline.Color{}, fmt.Errorf("outline.color: %w", err)
	}
	return col, nil
}

// StagingEase resolves timing.staging_ease; an empty name means Smoothstep.
func (c *Config) StagingEase() (tween.Ease, error) {
	if c.Timing.StagingEase == "" {
		return tween.Smoothstep, nil
	}
	ease, ok := tween.EaseByName(c.Timing.StagingEase)
	if !ok {
		return nil, fmt.Errorf("timing.staging_ease: unknown curve %q", c.Timing.StagingEase)
	}
	return ease, nil
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Timing.SettleDelay < 0 {
		return fmt.Errorf("timing.settle_delay %v is negative", c.Timing.SettleDelay)
	}
	if c.Timing.RestoreDuration < 0 {
		return fmt.Errorf("timing.restore_duration %v is negative", c.Timing.RestoreDuration)
	}
	if c.Assembly.Scene == "" {
		return fmt.Errorf("assembly.scene is required")
	}
	if _, err := c.StagingEase(); err != nil {
		return err
	}
	if _, err := c.OutlineColor(); err != nil {
		return err
	}
	return nil
}
