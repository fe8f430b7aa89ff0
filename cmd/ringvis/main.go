package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/noriah/ringvis"
	"github.com/noriah/ringvis/input"

	_ "github.com/noriah/ringvis/input/all"

	"github.com/integrii/flaggy"
)

// AppName is the app name
const AppName = "ringvis"

// AppDesc is the app description
const AppDesc = "Segmented ring overlay driven by multichannel input levels"

// AppSite is the app website
const AppSite = "https://github.com/noriah/ringvis"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg, color, err := newConfig()
	chk(err, "failed to read environment")

	if doFlags(&cfg, &color) {
		return
	}

	chk(finishConfig(&cfg, color), "invalid config")
	chk(cfg.Validate(), "invalid config")

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	chk(ringvis.Run(&cfg, ctx), "failed to run ringvis")
}

func doFlags(cfg *ringvis.Config, color *string) bool {

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:                 "list-backends",
		ShortName:            "lb",
		Description:          "list all supported backends",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	listDevicesCmd := flaggy.Subcommand{
		Name:                 "list-devices",
		ShortName:            "ld",
		Description:          "list all devices for a backend",
		AdditionalHelpAppend: "\nuse the full name or the #index after the '-'",
	}

	parser.AttachSubcommand(&listDevicesCmd, 1)

	parser.String(&cfg.Backend, "b", "backend", "backend name")
	parser.String(&cfg.Device, "d", "device", "device name or #index")
	parser.Float64(&cfg.SampleRate, "r", "rate", "sample rate")
	parser.Int(&cfg.SampleSize, "n", "samples", "frames per buffer")
	parser.Int(&cfg.ChannelCount, "ch", "channels", "channel count [1, 8]")
	parser.Int(&cfg.Segments, "s", "segments", "ring segments [1, +Inf)")
	parser.Float32(&cfg.InnerRadius, "ir", "inner", "inner radius in screen halves")
	parser.Float32(&cfg.OuterRadius, "or", "outer", "outer radius in screen halves")
	parser.Float32(&cfg.Rotation, "rot", "rotation", "ring rotation in radians")
	parser.String(color, "c", "color", "base color as #rrggbb")
	parser.String(&cfg.Display, "m", "mode", "display mode (overlay, terminal, raw)")
	parser.Int(&cfg.FrameRate, "f", "fps", "lines per second in raw mode")

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case listBackendsCmd.Used:
		for _, backend := range input.Backends {
			fmt.Printf("- %s\n", backend.Name)
		}

		return true

	case listDevicesCmd.Used:
		backend, err := input.InitBackend(cfg.Backend)
		chk(err, "failed to init backend")
		defer backend.Close()

		devices, err := backend.Devices()
		chk(err, "failed to get devices")

		// We don't really need the default device to be indicated.
		defaultDevice, _ := backend.DefaultDevice()

		fmt.Printf("all devices for %q backend. '*' marks default\n", cfg.Backend)

		for idx := range devices {
			star := ' '
			if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
				star = '*'
			}

			fmt.Printf("- #%d %v %c\n", idx, devices[idx], star)
		}

		return true
	}

	return false
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
