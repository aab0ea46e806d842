package audio

import (
	"math"
	"sync"
	"time"

	"github.com/ingyamilmolinar/shimon/core/model"
)

type waveform int

const (
	sine waveform = iota
	square
)

// note is a pitch held for dur; freq 0 is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

const (
	rampDur = 5 * time.Millisecond
	blip    = 60 * time.Millisecond
	blipGap = 40 * time.Millisecond
)

// Classic four-tone palette.
var colorFreq = [model.ColorCount]float64{
	model.Red:    310,
	model.Blue:   209,
	model.Green:  415,
	model.Yellow: 252,
}

const (
	c5 = 523.25
	e5 = 659.25
	g4 = 392.00
	g5 = 783.99
	a4 = 440.00
)

// cueFor returns the notes for a track and whether the catalog has it.
func cueFor(t model.Track) ([]note, waveform, bool) {
	switch t.Folder {
	case model.ColorFolder:
		c := model.Color(t.File - 1)
		if !c.Valid() {
			return nil, sine, false
		}
		return []note{{colorFreq[c], 450 * time.Millisecond}}, sine, true
	case model.ScoreFolder:
		if int(t.File) > model.MaxScoreTrack {
			return nil, sine, false
		}
		return scoreNotes(int(t.File)), sine, true
	}

	if t.IsInvite() {
		return inviteNotes(int(t.File)), sine, true
	}
	switch t {
	case model.TrackInstructions:
		var out []note
		for i := 0; i < 2; i++ {
			for _, c := range model.Colors {
				out = append(out, note{colorFreq[c], 200 * time.Millisecond}, note{0, 25 * time.Millisecond})
			}
		}
		return out, sine, true
	case model.TrackTimeout:
		return []note{{150, 250 * time.Millisecond}, {0, 50 * time.Millisecond}, {110, 250 * time.Millisecond}}, square, true
	case model.TrackWrong:
		return []note{{90, 600 * time.Millisecond}}, square, true
	case model.TrackGameOver:
		return []note{
			{colorFreq[model.Green], 250 * time.Millisecond},
			{colorFreq[model.Red], 250 * time.Millisecond},
			{colorFreq[model.Yellow], 250 * time.Millisecond},
			{colorFreq[model.Blue], 250 * time.Millisecond},
			{150, 400 * time.Millisecond},
		}, sine, true
	case model.TrackCorrect:
		return []note{{c5, 110 * time.Millisecond}, {e5, 110 * time.Millisecond}, {g5, 160 * time.Millisecond}}, sine, true
	case model.TrackMyTurn:
		return []note{{c5, 150 * time.Millisecond}, {g4, 150 * time.Millisecond}}, sine, true
	case model.TrackYourTurn:
		return []note{{g4, 150 * time.Millisecond}, {c5, 150 * time.Millisecond}}, sine, true
	}
	return nil, sine, false
}

// scoreNotes sounds one high blip per ten points and one low blip per
// remaining point; zero is a single long low tone.
func scoreNotes(score int) []note {
	if score == 0 {
		return []note{{a4 / 2, 400 * time.Millisecond}}
	}
	var out []note
	for i := 0; i < score/10; i++ {
		out = append(out, note{g5, blip}, note{0, blipGap})
	}
	if score/10 > 0 && score%10 > 0 {
		out = append(out, note{0, 2 * blipGap})
	}
	for i := 0; i < score%10; i++ {
		out = append(out, note{a4, blip}, note{0, blipGap})
	}
	return out
}

// inviteNotes walks the color tones in a rotation picked by the clip
// number so each invite sounds different.
func inviteNotes(n int) []note {
	var out []note
	for i := 0; i < 6; i++ {
		c := model.Colors[(n+i*(n%3+1))%model.ColorCount]
		out = append(out, note{colorFreq[c] * 2, 140 * time.Millisecond})
	}
	return append(out, note{c5, 300 * time.Millisecond})
}

func render(notes []note, wave waveform, sr int) []float32 {
	var total int
	for _, n := range notes {
		total += samplesFor(n.dur, sr)
	}
	buf := make([]float32, 0, total)
	ramp := samplesFor(rampDur, sr)
	var phase float64
	for _, n := range notes {
		count := samplesFor(n.dur, sr)
		for i := 0; i < count; i++ {
			if n.freq == 0 {
				buf = append(buf, 0)
				continue
			}
			phase += 2 * math.Pi * n.freq / float64(sr)
			v := math.Sin(phase)
			if wave == square {
				v = math.Copysign(0.6, v)
			}
			env := 1.0
			if i < ramp {
				env = float64(i) / float64(ramp)
			} else if rem := count - i; rem < ramp {
				env = float64(rem) / float64(ramp)
			}
			buf = append(buf, float32(v*env*0.8))
		}
	}
	return buf
}

func samplesFor(d time.Duration, sr int) int {
	return int(math.Round(d.Seconds() * float64(sr)))
}

// synth renders cues on first use and keeps them for later plays.
type synth struct {
	mu    sync.Mutex
	sr    int
	cache map[model.Track][]float32
}

func newSynth(sr int) *synth {
	return &synth{sr: sr, cache: map[model.Track][]float32{}}
}

// Voice returns a fresh voice for t, or false when the catalog has no
// such clip.
func (s *synth) Voice(t model.Track) (Voice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf, ok := s.cache[t]
	if !ok {
		notes, wave, known := cueFor(t)
		if !known {
			return nil, false
		}
		buf = render(notes, wave, s.sr)
		s.cache[t] = buf
	}
	return &pcmVoice{buf: buf}, true
}

// Length returns how long t plays.
func (s *synth) Length(t model.Track) time.Duration {
	notes, _, ok := cueFor(t)
	if !ok {
		return 0
	}
	var d time.Duration
	for _, n := range notes {
		d += n.dur
	}
	return d
}
