// Package all imports all backends implemented by the input package.
package all

import (
	_ "github.com/noriah/ringvis/input/ffmpeg"
	_ "github.com/noriah/ringvis/input/parec"
	_ "github.com/noriah/ringvis/input/pipewire"
	_ "github.com/noriah/ringvis/input/portaudio"
	_ "github.com/noriah/ringvis/input/stdinput"
	_ "github.com/noriah/ringvis/input/wavfile"
)
