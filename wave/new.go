package wave

import "github.com/farcloser/waveforge"

// NewFileInfo builds the FileInfo for a brand-new file with no backing
// disk path: a canonical PCM fmt profile, standard channel mask/names for
// the given channel count, and no preserved chunk layout (Encode will
// therefore emit the canonical fmt+data-only layout). NumFrames starts at
// 0; the caller sets it once the channel functions are sized.
func NewFileInfo(channels, sampleRateHz, bitsPerSample int) (*FileInfo, error) {
	if channels < 1 {
		return nil, errBadFormatTag
	}

	if bitsPerSample%8 != 0 || !waveforge.ValidByteDepth(bitsPerSample/8) {
		return nil, errBadBitDepth
	}

	if !waveforge.ValidSampleRate(sampleRateHz) {
		return nil, errBadFrequency
	}

	extensible := channels > 2 || bitsPerSample > 16
	mask := defaultMaskFor(channels)

	format := Format{
		AudioFormat:   formatPCM,
		Channels:      channels,
		SampleRate:    sampleRateHz,
		BitsPerSample: bitsPerSample,
		Extensible:    extensible,
		ChannelMask:   mask,
	}

	names, editable := resolveChannelNames(channels, mask, extensible)

	return &FileInfo{
		Format:          format,
		ChannelNames:    names,
		ChannelEditable: editable,
	}, nil
}

// defaultMaskFor picks a channel mask for a new file: one of the standard
// layouts when the channel count matches one, otherwise the first
// channels bits of channelMaskNames in ascending order (capped at its
// length) so every channel still gets a canonical name and stays editable.
func defaultMaskFor(channels int) uint32 {
	if m := channelMaskFor(channels, 0); m != 0 {
		return m
	}

	var mask uint32

	n := channels
	if n > len(channelMaskNames) {
		n = len(channelMaskNames)
	}

	for bit := 0; bit < n; bit++ {
		mask |= 1 << uint(bit)
	}

	return mask
}
