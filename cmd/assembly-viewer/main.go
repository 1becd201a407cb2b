// Package main is the entry point for the interactive assembly guide viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/assembly-guide/internal/config"
	"github.com/Faultbox/assembly-guide/internal/guide"
	"github.com/Faultbox/assembly-guide/internal/logger"
	"github.com/Faultbox/assembly-guide/internal/viewer"
	"github.com/Faultbox/assembly-guide/internal/visibility"
)

// guideOptions translates the viewer config into orchestrator options.
func guideOptions(cfg *config.Config) (guide.Options, error) {
	outlineColor, err := cfg.OutlineColor()
	if err != nil {
		return guide.Options{}, err
	}
	ease, err := cfg.StagingEase()
	if err != nil {
		return guide.Options{}, err
	}
	return guide.Options{
		Timing: visibility.Options{
			SettleDelay:     cfg.Timing.SettleDelay,
			RestoreDuration: cfg.Timing.RestoreDuration,
			StagingEase:     ease,
		},
		OutlineColor: outlineColor,
	}, nil
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	opts, err := guideOptions(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Assembly Guide ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := guide.Open(guide.Paths{
		Scene:  cfg.Assembly.Scene,
		Groups: cfg.Assembly.Groups,
		Steps:  cfg.Assembly.Steps,
	}, opts, logger.Named("guide"))
	if err != nil {
		logger.Error("failed to load assembly", zap.Error(err))
		os.Exit(1)
	}
	for _, id := range g.EmptySteps() {
		logger.Warn("configuration warning: step isolates no meshes", zap.String("step", id))
	}

	v, err := viewer.New(viewer.Config{
		Title:         "Assembly Guide: " + g.Scene().Name,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Fullscreen:    cfg.Window.Fullscreen,
		VSync:         cfg.Window.VSync,
		ScreenshotDir: "screenshots",
	}, g, logger.Named("viewer"))
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
