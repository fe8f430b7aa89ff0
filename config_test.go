package ringvis

import (
	"testing"

	"github.com/noriah/ringvis/graphic"
	"github.com/pkg/errors"
)

func TestZeroConfigValid(t *testing.T) {
	cfg := NewZeroConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.SampleRate != 48000 || cfg.SampleSize != 512 || cfg.ChannelCount != 8 {
		t.Errorf("capture defaults %v/%d/%d", cfg.SampleRate, cfg.SampleSize, cfg.ChannelCount)
	}

	if cfg.Segments != 8 || cfg.InnerRadius != 0.48 || cfg.OuterRadius != 0.5 {
		t.Errorf("ring defaults %d/%v/%v", cfg.Segments, cfg.InnerRadius, cfg.OuterRadius)
	}

	if cfg.Color != graphic.Red || cfg.Display != DisplayOverlay {
		t.Errorf("color %v display %q", cfg.Color, cfg.Display)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"rate below size", func(c *Config) { c.SampleRate = 256 }},
		{"tiny buffer", func(c *Config) { c.SampleSize = 3 }},
		{"no channels", func(c *Config) { c.ChannelCount = 0 }},
		{"nine channels", func(c *Config) { c.ChannelCount = 9 }},
		{"no segments", func(c *Config) { c.Segments = 0 }},
		{"negative inner", func(c *Config) { c.InnerRadius = -0.1 }},
		{"inner equals outer", func(c *Config) { c.InnerRadius = c.OuterRadius }},
		{"inner past outer", func(c *Config) { c.InnerRadius = 0.6 }},
		{"unknown display", func(c *Config) { c.Display = "hologram" }},
		{"negative frame rate", func(c *Config) { c.FrameRate = -1 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := NewZeroConfig()
			test.edit(&cfg)

			err := cfg.Validate()
			if errors.Cause(err) != ErrInvalidConfig {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"mono", func(c *Config) { c.ChannelCount = 1 }},
		{"more segments than channels", func(c *Config) { c.Segments = 24; c.ChannelCount = 6 }},
		{"disc", func(c *Config) { c.InnerRadius = 0 }},
		{"terminal", func(c *Config) { c.Display = DisplayTerminal }},
		{"raw", func(c *Config) { c.Display = DisplayRaw; c.FrameRate = 0 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := NewZeroConfig()
			test.edit(&cfg)

			if err := cfg.Validate(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRingConfig(t *testing.T) {
	cfg := NewZeroConfig()
	cfg.Segments = 12

	ring := cfg.Ring()
	if ring.Segments != 12 || ring.Rotation != graphic.DefaultRotation {
		t.Errorf("ring = %+v", ring)
	}

	if ring.CenterX != 0 || ring.CenterY != 0 {
		t.Errorf("ring not centered: %+v", ring)
	}
}
