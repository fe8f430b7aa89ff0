package main

import (
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/noriah/ringvis"
	"github.com/noriah/ringvis/graphic"
	"github.com/pkg/errors"
)

// environment defaults, overridden by flags
const (
	envBackend = "RINGVIS_BACKEND"
	envDevice  = "RINGVIS_DEVICE"
	envDisplay = "RINGVIS_DISPLAY"
	envColor   = "RINGVIS_COLOR"
)

// loadEnv reads .env files in to the environment. Missing files are fine.
func loadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "failed to load .env")
	}

	return nil
}

// applyEnv copies set environment values in to cfg.
func applyEnv(cfg *ringvis.Config, color *string) {
	if v, ok := os.LookupEnv(envBackend); ok {
		cfg.Backend = v
	}

	if v, ok := os.LookupEnv(envDevice); ok {
		cfg.Device = v
	}

	if v, ok := os.LookupEnv(envDisplay); ok {
		cfg.Display = v
	}

	if v, ok := os.LookupEnv(envColor); ok {
		*color = v
	}
}

// newConfig builds the starting config for the flag parser: defaults, then
// the environment.
func newConfig(files ...string) (ringvis.Config, string, error) {
	cfg := ringvis.NewZeroConfig()
	color := cfg.Color.String()

	if err := loadEnv(files...); err != nil {
		return cfg, color, err
	}

	applyEnv(&cfg, &color)

	return cfg, color, nil
}

// finishConfig applies values that need parsing after the flags are read.
func finishConfig(cfg *ringvis.Config, color string) error {
	c, err := graphic.ParseColor(color)
	if err != nil {
		return err
	}

	cfg.Color = c

	return nil
}
