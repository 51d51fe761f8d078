// Package editor is the public facade over the WAVE editing core: a
// non-generic Editor hides the float32/float64 precision chosen from a
// file's bit depth at open time, delegating to a generic implementation
// that carries that precision through storage, FFT, and the modification
// stack.
package editor

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/farcloser/waveforge"
	"github.com/farcloser/waveforge/fft"
	"github.com/farcloser/waveforge/internal/dither"
	"github.com/farcloser/waveforge/modify"
	"github.com/farcloser/waveforge/sample"
	"github.com/farcloser/waveforge/wave"
)

// precisionBitsThreshold is the bit depth above which a channel is stored
// in float64 rather than float32: 24- and 32-bit source material carries
// more mantissa bits than float32 can hold losslessly, while 8/16-bit
// material fits float32 with margin to spare.
const precisionBitsThreshold = 16

// coreEditor is implemented by editorImpl[float32] and editorImpl[float64];
// Editor holds one instance chosen at open/create time.
type coreEditor interface {
	Close()
	NumChannels() int
	NumFrames() int
	SampleType() waveforge.SampleType
	ChannelNames() []string
	Channel(i int) (Channel, error)
	Dirty() bool
	WriteFile() error
	WriteFileAs(path string) error
	CuePoints() []wave.CuePoint
	Format() wave.Format
}

// Editor is the caller-facing handle to one open or newly created WAVE
// file: its channels, their modification history, and save/undo/redo.
type Editor struct {
	impl    coreEditor
	id      uuid.UUID
	logger  *slog.Logger
	warning wave.Result
}

// OpenFile decodes path into an Editor. The precision used for every
// channel (float32 or float64) is chosen from the file's bit depth.
func OpenFile(ctx context.Context, path string, logger *slog.Logger) (*Editor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path) //nolint:gosec // caller-specified audio file path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	resPeek, format, err := wave.PeekFormat(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w (result=%s)", path, err, resPeek)
	}

	logger.DebugContext(ctx, "opening WAVE file", "path", path, "bits", format.BitsPerSample, "channels", format.Channels)

	var (
		impl coreEditor
		res  wave.Result
	)

	if format.BitsPerSample > precisionBitsThreshold {
		impl, res, err = newEditorImpl[float64](path, data)
	} else {
		impl, res, err = newEditorImpl[float32](path, data)
	}

	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w (result=%s)", path, err, res)
	}

	return &Editor{impl: impl, id: uuid.New(), logger: logger, warning: res}, nil
}

// CreateNewFile builds a blank, silent Editor with no backing path:
// seconds of silence at sampleRateHz across channels channels, stored at
// bitDepth bits per sample.
func CreateNewFile(seconds, sampleRateHz, channels, bitDepth int, logger *slog.Logger) (*Editor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if seconds < waveforge.MinNewFileSeconds || seconds > waveforge.MaxNewFileSeconds {
		return nil, ErrUnsupportedDuration
	}

	var (
		impl coreEditor
		err  error
	)

	if bitDepth > precisionBitsThreshold {
		impl, err = newBlankEditorImpl[float64](seconds, sampleRateHz, channels, bitDepth)
	} else {
		impl, err = newBlankEditorImpl[float32](seconds, sampleRateHz, channels, bitDepth)
	}

	if err != nil {
		return nil, err
	}

	return &Editor{impl: impl, id: uuid.New(), logger: logger}, nil
}

// ID is this editor session's identity, suitable for correlating log lines
// across a long-running session.
func (e *Editor) ID() uuid.UUID { return e.id }

// OpenWarning reports the non-fatal Result warnings observed at open time
// (e.g. unknown chunks present, channel count beyond the editable ceiling).
// Success (zero value) for a file created with CreateNewFile.
func (e *Editor) OpenWarning() wave.Result { return e.warning }

func (e *Editor) NumChannels() int          { return e.impl.NumChannels() }
func (e *Editor) NumFrames() int            { return e.impl.NumFrames() }
func (e *Editor) SampleType() waveforge.SampleType { return e.impl.SampleType() }
func (e *Editor) ChannelNames() []string    { return e.impl.ChannelNames() }
func (e *Editor) Dirty() bool               { return e.impl.Dirty() }
func (e *Editor) CuePoints() []wave.CuePoint { return e.impl.CuePoints() }

// Format reports the decoded fmt-chunk profile: sample rate, bit depth,
// and channel layout.
func (e *Editor) Format() wave.Format { return e.impl.Format() }

// Channel returns the i'th channel (0-indexed), including non-editable
// trailing channels.
func (e *Editor) Channel(i int) (Channel, error) { return e.impl.Channel(i) }

// WriteFile saves back to the path the editor was opened from.
func (e *Editor) WriteFile() error { return e.impl.WriteFile() }

// WriteFileAs saves to a new path, which becomes the editor's path for
// subsequent WriteFile calls.
func (e *Editor) WriteFileAs(path string) error { return e.impl.WriteFileAs(path) }

// Close releases every channel's modification stack. The FFT cache and
// channel storage are left to the garbage collector.
func (e *Editor) Close() { e.impl.Close() }

// editorImpl is the generic core behind Editor, parameterized over the
// storage precision chosen at open/create time.
type editorImpl[R sample.Real] struct {
	path string // the opened file; empty for a CreateNewFile editor until its first successful WriteFileAs

	info     *wave.FileInfo
	channels []*channel[R]
	cache    *fft.CacheSet[R]
	dither   *dither.Source
}

func newEditorImpl[R sample.Real](path string, data []byte) (*editorImpl[R], wave.Result, error) {
	res, info, funcs, err := wave.Decode[R](bytes.NewReader(data))
	if err != nil {
		return nil, res, err
	}

	cache := fft.NewCacheSet[R]()

	channels := make([]*channel[R], len(funcs))
	for i, fn := range funcs {
		channels[i] = &channel[R]{
			name:         info.ChannelNames[i],
			editable:     info.ChannelEditable[i],
			sampleRateHz: info.Format.SampleRate,
			numSamples:   info.NumFrames,
			domain:       waveforge.Time,
			fn:           fn,
			stack:        modify.NewStack[R](),
			cache:        cache,
		}
	}

	return &editorImpl[R]{
		path:     path,
		info:     info,
		channels: channels,
		cache:    cache,
		dither:   dither.InitDither(),
	}, res, nil
}

func newBlankEditorImpl[R sample.Real](seconds, sampleRateHz, numChannels, bitDepth int) (*editorImpl[R], error) {
	info, err := wave.NewFileInfo(numChannels, sampleRateHz, bitDepth)
	if err != nil {
		return nil, err
	}

	numFrames := seconds * sampleRateHz
	info.NumFrames = numFrames

	targetReal := nextPowerOfTwo(max(numFrames, waveforge.MinFourierLength))
	complexLen := targetReal / 2

	cache := fft.NewCacheSet[R]()

	channels := make([]*channel[R], numChannels)

	for i := range channels {
		fn, err := sample.Allocate[sample.Complex[R]](complexLen)
		if err != nil {
			return nil, fmt.Errorf("allocating channel %d: %w", i, err)
		}

		channels[i] = &channel[R]{
			name:         info.ChannelNames[i],
			editable:     info.ChannelEditable[i],
			sampleRateHz: sampleRateHz,
			numSamples:   numFrames,
			domain:       waveforge.Time,
			fn:           fn,
			stack:        modify.NewStack[R](),
			cache:        cache,
		}
	}

	return &editorImpl[R]{info: info, channels: channels, cache: cache, dither: dither.InitDither()}, nil
}

func (e *editorImpl[R]) Close() {
	for _, c := range e.channels {
		c.stack.Close()
	}
}

func (e *editorImpl[R]) NumChannels() int { return len(e.channels) }
func (e *editorImpl[R]) NumFrames() int   { return e.info.NumFrames }

func (e *editorImpl[R]) SampleType() waveforge.SampleType {
	var zero R

	switch any(zero).(type) {
	case float32:
		return waveforge.RealFloat32
	default:
		return waveforge.RealFloat64
	}
}

func (e *editorImpl[R]) ChannelNames() []string { return e.info.ChannelNames }
func (e *editorImpl[R]) CuePoints() []wave.CuePoint { return e.info.CuePoints }
func (e *editorImpl[R]) Format() wave.Format     { return e.info.Format }

func (e *editorImpl[R]) Channel(i int) (Channel, error) {
	if i < 0 || i >= len(e.channels) {
		return nil, ErrChannelOutOfRange
	}

	return e.channels[i], nil
}

func (e *editorImpl[R]) Dirty() bool {
	for _, c := range e.channels {
		if c.stack.Dirty() {
			return true
		}
	}

	return false
}

func (e *editorImpl[R]) WriteFile() error {
	if e.path == "" {
		return ErrNoOriginalPath
	}

	return e.writeTo(e.path)
}

func (e *editorImpl[R]) WriteFileAs(path string) error {
	if err := e.writeTo(path); err != nil {
		return err
	}

	e.path = path

	return nil
}

func (e *editorImpl[R]) writeTo(path string) error {
	funcs := make([]*sample.Function[sample.Complex[R]], len(e.channels))
	touched := make([][][2]int, len(e.channels))

	for i, c := range e.channels {
		touched[i] = c.stack.TouchedRanges()

		if c.domain != waveforge.Time {
			if err := c.SetDomain(waveforge.Time); err != nil {
				return fmt.Errorf("converting channel %d back to time domain: %w", i, err)
			}
		}

		funcs[i] = c.fn
	}

	if err := wave.WriteFile(path, e.info, funcs, touched, e.dither); err != nil {
		return err
	}

	for _, c := range e.channels {
		c.stack.MarkSaved()
	}

	return nil
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
