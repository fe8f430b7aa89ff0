// Package ringvis wires audio capture to the ring overlay.
package ringvis

import (
	"context"
	"log"
	"os"

	"github.com/noriah/ringvis/display"
	"github.com/noriah/ringvis/display/overlay"
	"github.com/noriah/ringvis/display/raw"
	"github.com/noriah/ringvis/display/terminal"
	"github.com/noriah/ringvis/dsp"
	"github.com/noriah/ringvis/graphic"
	"github.com/noriah/ringvis/input"
	"github.com/noriah/ringvis/processor"
	"github.com/pkg/errors"
)

// Run captures from the configured backend and draws the ring until the
// display is closed or ctx is done. It must be called from the main
// goroutine.
func Run(cfg *Config, ctx context.Context) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// INPUT SETUP

	backend, err := input.InitBackend(cfg.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	sessConfig := input.SessionConfig{
		FrameSize:  cfg.ChannelCount,
		SampleSize: cfg.SampleSize,
		SampleRate: cfg.SampleRate,
	}

	if sessConfig.Device, err = input.GetDevice(backend, cfg.Device); err != nil {
		return err
	}

	audio, err := backend.Start(sessConfig)
	if err != nil {
		return errors.Wrap(err, "failed to start the input backend")
	}

	// PROCESSOR SETUP

	tracker := dsp.NewTracker()

	peak := processor.New(processor.Config{
		ChannelCount: cfg.ChannelCount,
		Tracker:      tracker,
		EventBuffer:  cfg.EventBuffer,
	})

	ctx = peak.Start(ctx)
	defer peak.Stop()

	log.Printf("capturing %d channels from %s (%s) at %.0fHz, %d frames per buffer",
		cfg.ChannelCount, sessConfig.Device, cfg.Backend, cfg.SampleRate, cfg.SampleSize)

	if err := audio.Start(ctx, peak); err != nil {
		return errors.Wrap(err, "failed to start input session")
	}
	defer audio.Stop()

	go func() {
		// the ring keeps its last levels if capture ends early
		if err := audio.Wait(); err != nil {
			log.Println("capture ended:", err)
		}
	}()

	// DISPLAY SETUP

	base := cfg.Color
	ring := graphic.BuildRing(cfg.Ring())

	appCfg := display.Config{
		Ring:     ring,
		Levels:   tracker,
		Base:     &base,
		Channels: cfg.ChannelCount,
	}

	switch cfg.Display {
	case DisplayRaw:
		appCfg.Host = raw.New(ctx, os.Stdout, cfg.FrameRate)
		appCfg.Panel = raw.Panel{}

		app := display.NewApp(appCfg)
		if err := app.Init(); err != nil {
			return err
		}

		return app.Run()

	case DisplayTerminal:
		term, err := terminal.New(ctx)
		if err != nil {
			return err
		}

		appCfg.Host = term
		appCfg.Panel = terminal.NewPanel(term)

		app := display.NewApp(appCfg)
		if err := app.Init(); err != nil {
			term.Close()
			return err
		}

		return app.Run()

	default:
		win, err := overlay.NewWindow(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to open overlay window")
		}

		appCfg.Host = win
		appCfg.Panel = overlay.NewPanel(win)

		app := display.NewApp(appCfg)
		if err := app.Init(); err != nil {
			win.Close()
			return err
		}

		return overlay.Run(app, win)
	}
}
