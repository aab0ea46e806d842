package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackCatalog(t *testing.T) {
	assert.Equal(t, "/mp3/0006.mp3", TrackInstructions.String())
	assert.Equal(t, "/01/003.mp3", ColorTrack(Green).String())
	assert.Equal(t, "color", ColorTrack(Yellow).Kind())
	assert.Equal(t, "my_turn", TrackMyTurn.Kind())
	assert.Equal(t, "/mp3/0011.mp3", TrackMyTurn.String())
	assert.Equal(t, "your_turn", TrackYourTurn.Kind())

	for n := 1; n <= 5; n++ {
		tr := InviteTrack(n)
		assert.True(t, tr.IsInvite(), "invite %d", n)
		assert.Equal(t, "invite", tr.Kind())
	}
	assert.False(t, TrackInstructions.IsInvite())
	assert.False(t, ColorTrack(Red).IsInvite())
	assert.Equal(t, "unknown", Track{RootFolder, 0}.Kind())
}

func TestScoreTrackRange(t *testing.T) {
	tr, ok := ScoreTrack(0)
	assert.True(t, ok)
	assert.Equal(t, "/02/000.mp3", tr.String())

	tr, ok = ScoreTrack(42)
	assert.True(t, ok)
	assert.Equal(t, Track{ScoreFolder, 42}, tr)

	tr, ok = ScoreTrack(MaxScoreTrack)
	assert.True(t, ok)
	assert.Equal(t, "score", tr.Kind())

	_, ok = ScoreTrack(MaxScoreTrack + 1)
	assert.False(t, ok)
	_, ok = ScoreTrack(-1)
	assert.False(t, ok)
}

func TestParseColor(t *testing.T) {
	for _, c := range Colors {
		got, ok := ParseColor(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	got, ok := ParseColor(" yellow ")
	assert.True(t, ok)
	assert.Equal(t, Yellow, got)

	_, ok = ParseColor("purple")
	assert.False(t, ok)
	assert.False(t, Color(4).Valid())
}
