package dsp

// Peaks writes the peak absolute amplitude of each channel in the interleaved
// buffer in to dst. Channels at or above the channel count are zeroed.
//
// Returns the number of whole frames examined. Trailing samples that do not
// make up a full frame are ignored. Peaks does not allocate.
func Peaks(dst *Levels, in []float32, channels int) int {
	*dst = Levels{}

	if channels < 1 || channels > MaxChannels {
		return 0
	}

	frames := len(in) / channels

	for xFrame := 0; xFrame < frames; xFrame++ {
		frame := in[xFrame*channels : (xFrame+1)*channels]

		for ch, v := range frame {
			if v < 0 {
				v = -v
			}

			if v > dst[ch] {
				dst[ch] = v
			}
		}
	}

	return frames
}
