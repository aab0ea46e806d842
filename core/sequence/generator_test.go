package sequence

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingyamilmolinar/shimon/core/model"
)

func grow(g *Generator, n int) []model.Color {
	seq := []model.Color{g.First()}
	for len(seq) < n {
		seq = append(seq, g.Next(seq))
	}
	return seq
}

func TestGeneratedSequencesHaveNoLongRuns(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		g := NewGenerator(rand.New(rand.NewSource(seed)), DefaultRules())
		seq := grow(g, model.DefaultMaxLen)
		if run := LongestRun(seq); run > DefaultMaxSameColor {
			t.Fatalf("seed %d: run of %d in %v", seed, run, seq)
		}
	}
}

func TestGeneratorIsDeterministicForSeedAndPrefix(t *testing.T) {
	a := grow(NewGenerator(rand.New(rand.NewSource(42)), DefaultRules()), 32)
	b := grow(NewGenerator(rand.New(rand.NewSource(42)), DefaultRules()), 32)
	require.Equal(t, a, b)
}

func TestNextAvoidsThirdRepeat(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)), DefaultRules())
	seq := []model.Color{model.Blue, model.Red, model.Red}
	for i := 0; i < 500; i++ {
		require.NotEqual(t, model.Red, g.Next(seq))
	}
}

func TestNextAddsMissingColorToLongSequences(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(3)), DefaultRules())
	seq := []model.Color{
		model.Red, model.Blue, model.Red, model.Blue, model.Red,
		model.Blue, model.Red, model.Blue, model.Red,
	}
	for i := 0; i < 100; i++ {
		c := g.Next(seq)
		require.Contains(t, []model.Color{model.Green, model.Yellow}, c)
	}
}

func TestNextLeavesShortSequencesUnconstrained(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(5)), DefaultRules())
	seq := []model.Color{model.Red, model.Blue}
	seen := map[model.Color]bool{}
	for i := 0; i < 500; i++ {
		seen[g.Next(seq)] = true
	}
	assert.Len(t, seen, model.ColorCount)
}

func TestTrailingRun(t *testing.T) {
	assert.Equal(t, 0, TrailingRun(nil))
	assert.Equal(t, 1, TrailingRun([]model.Color{model.Red, model.Blue}))
	assert.Equal(t, 3, TrailingRun([]model.Color{model.Red, model.Blue, model.Blue, model.Blue}))
}

func TestConfuserDiffersWhenEnabled(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(9)), Rules{MaxAttempts: 64})
	for _, lit := range model.Colors {
		assert.Equal(t, lit, g.Confuser(lit, false))
		for i := 0; i < 100; i++ {
			assert.NotEqual(t, lit, g.Confuser(lit, true))
		}
	}
}

func TestConfuserFallsBackToLastDraw(t *testing.T) {
	// a source that always yields 0 makes every draw Red
	g := NewGenerator(rand.New(zeroSource{}), Rules{MaxAttempts: 3})
	assert.Equal(t, model.Red, g.Confuser(model.Red, true))
}

func TestPickVariantAvoidsLastClip(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(11)), Rules{MaxAttempts: 64})
	last := 0
	for i := 0; i < 200; i++ {
		n := g.PickVariant(5, last)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 5)
		require.NotEqual(t, last, n)
		last = n
	}
	assert.Equal(t, 1, g.PickVariant(1, 1))
}

type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}
