// Package audio synthesizes the game's cues and plays them through oto.
// A Device behaves like a single-channel clip player: starting a clip cuts
// off the previous one, and a clip that plays to its end is reported
// through the finished callback.
package audio

import (
	"errors"

	"github.com/ingyamilmolinar/shimon/core/model"
	game_log "github.com/ingyamilmolinar/shimon/internal/log"
)

// ErrUnavailable is returned by New when no output device can be opened.
var ErrUnavailable = errors.New("audio: output unavailable")

// Options configures the output device.
type Options struct {
	// Volume scales the mix, 0..1.
	Volume float64
}

func DefaultOptions() Options { return Options{Volume: 0.8} }

// Device plays cues. Its methods are safe for concurrent use.
type Device struct {
	mix    *mixer
	synth  *synth
	logger *game_log.Logger
	closer func() error
}

func newDevice(opts Options, logger *game_log.Logger) *Device {
	if logger == nil {
		logger = game_log.Discard()
	}
	vol := opts.Volume
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	return &Device{
		mix:    newMixer(vol),
		synth:  newSynth(sampleRate),
		logger: logger.Tagged("AUDIO"),
	}
}

// Play starts t, interrupting whatever is playing.
func (d *Device) Play(t model.Track) {
	v, ok := d.synth.Voice(t)
	if !ok {
		d.logger.Warnf("no clip for %s", t)
		return
	}
	if dropped := d.mix.Replace(t, v); dropped > 0 {
		d.logger.Debugf("play %s (%s), interrupted %d", t, t.Kind(), dropped)
		return
	}
	d.logger.Debugf("play %s (%s)", t, t.Kind())
}

// SetOnFinished installs the completion callback. It is called from the
// audio goroutine.
func (d *Device) SetOnFinished(f func(model.Track)) { d.mix.SetOnFinished(f) }

// Busy reports whether a clip is playing.
func (d *Device) Busy() bool { return d.mix.Playing() > 0 }

// Close stops output.
func (d *Device) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer()
}

// Silent is used when no output device is available. Nothing plays and
// nothing is ever reported finished, so every wait runs to its deadline.
type Silent struct{}

func (Silent) Play(model.Track)                {}
func (Silent) SetOnFinished(func(model.Track)) {}
func (Silent) Busy() bool                      { return false }
func (Silent) Close() error                    { return nil }
