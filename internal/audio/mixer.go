package audio

import (
	"sync"

	"github.com/ingyamilmolinar/shimon/core/model"
)

const (
	sampleRate          = 44100
	bufferSizeBytes10ms = sampleRate / 100 * 2 // 10ms of 16-bit mono audio
)

// Voice generates PCM samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

// pcmVoice plays a prerendered buffer once.
type pcmVoice struct {
	buf []float32
	i   int
}

func (v *pcmVoice) Sample() (float64, bool) {
	if v.i >= len(v.buf) {
		return 0, true
	}
	f := float64(v.buf[v.i])
	v.i++
	return f, false
}

// mixer mixes voices into a single PCM stream and reports each voice's
// track once it has played to the end.
type mixer struct {
	mu         sync.Mutex
	voices     []*voiceState
	gain       float64
	onFinished func(model.Track)
}

type voiceState struct {
	track model.Track
	v     Voice
}

func newMixer(gain float64) *mixer {
	return &mixer{gain: gain}
}

// Replace drops every playing voice and starts v. Dropped voices
// are never reported as finished.
func (m *mixer) Replace(t model.Track, v Voice) (dropped int) {
	m.mu.Lock()
	dropped = len(m.voices)
	m.voices = append(m.voices[:0], &voiceState{track: t, v: v})
	m.mu.Unlock()
	return dropped
}

// SetOnFinished installs the completion callback. It runs on the goroutine
// calling Read.
func (m *mixer) SetOnFinished(f func(model.Track)) {
	m.mu.Lock()
	m.onFinished = f
	m.mu.Unlock()
}

// Playing returns the number of playing voices.
func (m *mixer) Playing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read implements io.Reader for oto.Player.
func (m *mixer) Read(p []byte) (int, error) {
	var finished []model.Track
	samples := len(p) / 2

	m.mu.Lock()
	notify := m.onFinished
	for i := 0; i < samples; i++ {
		var sum float64
		for idx := 0; idx < len(m.voices); idx++ {
			vs := m.voices[idx]
			val, done := vs.v.Sample()
			sum += val
			if done {
				finished = append(finished, vs.track)
				m.voices = append(m.voices[:idx], m.voices[idx+1:]...)
				idx--
			}
		}
		sum *= m.gain
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		v := int16(sum * 32767)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}
	m.mu.Unlock()

	if notify != nil {
		for _, t := range finished {
			notify(t)
		}
	}
	return len(p), nil
}
