package wave

import (
	"fmt"

	"github.com/farcloser/waveforge"
)

// channelMaskNames is the standard ascending-bit-position → canonical
// speaker name table, up to the 18-channel editable ceiling.
var channelMaskNames = []string{
	"FL", "FR", "FC", "LFE", "BL", "BR", "FLC", "FRC",
	"BC", "SL", "SR", "TC", "TFL", "TFC", "TFR", "TBL", "TBC", "TBR",
}

// resolveChannelNames returns one name per channel. With an explicit
// channel mask, names come from popping set bits in ascending position;
// channels beyond the mask's popcount, or beyond the 18-channel editable
// ceiling, are named "ch N" and reported as non-editable. Without a mask
// (non-extensible format), the conventional mono/stereo names are used
// when they fit, "ch N" otherwise.
func resolveChannelNames(channels int, mask uint32, extensible bool) (names []string, editable []bool) {
	names = make([]string, channels)
	editable = make([]bool, channels)

	if !extensible || mask == 0 {
		switch channels {
		case 1:
			names[0] = "mono"
			editable[0] = true

			return names, editable
		case 2:
			names[0], names[1] = "left", "right"
			editable[0], editable[1] = true, true

			return names, editable
		}
	}

	idx := 0

	for bit := 0; bit < 32 && idx < channels; bit++ {
		if mask&(1<<uint(bit)) == 0 {
			continue
		}

		if bit < len(channelMaskNames) {
			names[idx] = channelMaskNames[bit]
		} else {
			names[idx] = fmt.Sprintf("ch %d", idx)
		}

		editable[idx] = idx < waveforge.MaxEditableChannels
		idx++
	}

	for ; idx < channels; idx++ {
		names[idx] = fmt.Sprintf("ch %d", idx)
		editable[idx] = false
	}

	return names, editable
}
