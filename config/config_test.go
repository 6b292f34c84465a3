package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COFFEE_RANGE_API_TOKEN", "tok_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.BaseURL != "https://api.dev.terminal.shop" {
		t.Errorf("base url default = %q", cfg.API.BaseURL)
	}
	if cfg.API.Token != "tok_test" {
		t.Errorf("token = %q", cfg.API.Token)
	}
	if cfg.Game.FPS != 30 {
		t.Errorf("fps default = %d", cfg.Game.FPS)
	}
	if !cfg.Game.Sound {
		t.Error("sound should default on")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level default = %q", cfg.Log.Level)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COFFEE_RANGE_API_TOKEN", "tok_test")
	t.Setenv("COFFEE_RANGE_API_BASE_URL", "http://localhost:9999")
	t.Setenv("COFFEE_RANGE_FPS", "60")
	t.Setenv("COFFEE_RANGE_SOUND", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:9999" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Game.FPS != 60 || cfg.Game.Sound {
		t.Errorf("game config = %+v", cfg.Game)
	}
}

func TestLoadRejectsMissingToken(t *testing.T) {
	t.Setenv("COFFEE_RANGE_API_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Error("expected an error without an API token")
	}
}
