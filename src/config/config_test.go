package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadKeepsDefaults(t *testing.T) {
	defaults := Env{Width: 40, Height: 15, Interval: 100 * time.Millisecond, Template: "testSample1"}
	cfg, err := Load(defaults)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != defaults {
		t.Fatalf("cfg = %+v, want %+v", cfg, defaults)
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("SIMLIFE_WIDTH", "80")
	t.Setenv("SIMLIFE_HEIGHT", "24")
	t.Setenv("SIMLIFE_INTERVAL", "250ms")
	t.Setenv("SIMLIFE_SEED", "99")
	t.Setenv("SIMLIFE_RANDOM", "true")
	t.Setenv("SIMLIFE_TEMPLATE", "glider")

	cfg, err := Load(Env{Width: 40, Height: 15, MaxSteps: 1000})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Env{
		Width:    80,
		Height:   24,
		Interval: 250 * time.Millisecond,
		MaxSteps: 1000,
		Seed:     99,
		Random:   true,
		Template: "glider",
	}
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadRejectsMalformedValue(t *testing.T) {
	t.Setenv("SIMLIFE_WIDTH", "wide")
	defaults := Env{Width: 40}
	cfg, err := Load(defaults)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("err = %v", err)
	}
	if cfg != defaults {
		t.Fatalf("cfg = %+v, want defaults back", cfg)
	}
}
