package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/statboard/statboard/pkg/errors"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	p, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if p.BaselineAspect.Value() != 4 {
		t.Errorf("baseline = %v, want 4:1", p.BaselineAspect)
	}
	if p.Limits.FloorPx != 12 || p.Limits.CeilingPx != 96 {
		t.Errorf("limits = %+v", p.Limits)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statboard.toml")
	body := `
[server]
addr = ":9090"

[cache]
backend = "none"

[layout]
baseline_aspect = "3:1"
pie_legend_max = 8
max_sane_height_px = 2000
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}

	p, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if p.BaselineAspect.Value() != 3 {
		t.Errorf("baseline = %v, want 3:1", p.BaselineAspect)
	}
	if p.Fit.PieLegendMax != 8 {
		t.Errorf("pie legend max = %d", p.Fit.PieLegendMax)
	}
	if p.MaxSaneHeightPx != 2000 {
		t.Errorf("max sane height = %v", p.MaxSaneHeightPx)
	}
	// Knobs the file left alone keep their defaults.
	if cfg.Layout.FloorFontPx != 12 {
		t.Errorf("floor = %v", cfg.Layout.FloorFontPx)
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv("STATBOARD_MONGO_URI", "mongodb://db:27017")
	t.Setenv("STATBOARD_ADDR", ":7070")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Backend != "mongo" || cfg.Store.MongoURI != "mongodb://db:27017" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown store backend", func(c *Config) { c.Store.Backend = "postgres" }},
		{"mongo without uri", func(c *Config) { c.Store.Backend = "mongo" }},
		{"file cache without dir", func(c *Config) { c.Cache.Backend = "file" }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis" }},
		{"bad baseline aspect", func(c *Config) { c.Layout.BaselineAspect = "wide" }},
		{"ceiling below floor", func(c *Config) { c.Layout.CeilingFontPx = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}
