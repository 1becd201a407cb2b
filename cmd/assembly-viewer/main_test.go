package main

import (
	"testing"
	"time"

	"github.com/Faultbox/assembly-guide/internal/config"
	"github.com/Faultbox/assembly-guide/internal/outline"
	"github.com/Faultbox/assembly-guide/internal/tween"
)

func TestGuideOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Timing.SettleDelay = 100 * time.Millisecond
	cfg.Timing.StagingEase = "linear"
	cfg.Outline.Color = "#00ff00"

	opts, err := guideOptions(cfg)
	if err != nil {
		t.Fatalf("guideOptions() error = %v", err)
	}
	if opts.Timing.SettleDelay != 100*time.Millisecond {
		t.Errorf("SettleDelay = %v", opts.Timing.SettleDelay)
	}
	if opts.Timing.StagingEase(0.3) != tween.Linear(0.3) {
		t.Error("staging ease not taken from config")
	}
	if want, _ := outline.ParseColor("#00ff00"); opts.OutlineColor != want {
		t.Errorf("OutlineColor = %v, want %v", opts.OutlineColor, want)
	}
}

func TestGuideOptionsRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"colour", func(c *config.Config) { c.Outline.Color = "chartreuse" }},
		{"ease", func(c *config.Config) { c.Timing.StagingEase = "bounce" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			if _, err := guideOptions(cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
