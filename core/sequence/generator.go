package sequence

import (
	"math/rand"

	"github.com/ingyamilmolinar/shimon/core/model"
)

const (
	DefaultMaxSameColor = 2
	DefaultMinDistinct  = 3
	// varietyAfter is the sequence length past which the distinct-color
	// rule applies.
	varietyAfter = 8
	// DefaultMaxAttempts bounds decorative resampling (confuser, clips).
	DefaultMaxAttempts = 8
)

// Rules configures the variety constraints.
type Rules struct {
	MaxSameColor int
	MinDistinct  int
	MaxAttempts  int
}

func DefaultRules() Rules {
	return Rules{
		MaxSameColor: DefaultMaxSameColor,
		MinDistinct:  DefaultMinDistinct,
		MaxAttempts:  DefaultMaxAttempts,
	}
}

// Generator draws colors from a caller-owned random source. Given the same
// seed and the same prefix it always produces the same color.
type Generator struct {
	rng   *rand.Rand
	rules Rules
}

func NewGenerator(rng *rand.Rand, rules Rules) *Generator {
	if rules.MaxSameColor <= 0 {
		rules.MaxSameColor = DefaultMaxSameColor
	}
	if rules.MaxAttempts <= 0 {
		rules.MaxAttempts = DefaultMaxAttempts
	}
	return &Generator{rng: rng, rules: rules}
}

func (g *Generator) draw() model.Color {
	return model.Color(g.rng.Intn(model.ColorCount))
}

// First draws the opening color of a round; there is no history to
// constrain it.
func (g *Generator) First() model.Color { return g.draw() }

// Next returns the color to append to seq.
func (g *Generator) Next(seq []model.Color) model.Color {
	if len(seq) == 0 {
		return g.draw()
	}
	last := seq[len(seq)-1]

	if len(seq) > varietyAfter && g.rules.MinDistinct > 0 {
		if missing := missingColors(seq); len(missing) > 0 &&
			model.ColorCount-len(missing) < g.rules.MinDistinct {
			// last is always present, so the run rule holds too
			return missing[g.rng.Intn(len(missing))]
		}
	}

	c := g.draw()
	if TrailingRun(seq) >= g.rules.MaxSameColor {
		for c == last {
			c = g.draw()
		}
	}
	return c
}

// TrailingRun counts how many times the last color repeats at the end of
// seq.
func TrailingRun(seq []model.Color) int {
	if len(seq) == 0 {
		return 0
	}
	last := seq[len(seq)-1]
	n := 0
	for i := len(seq) - 1; i >= 0 && seq[i] == last; i-- {
		n++
	}
	return n
}

// LongestRun returns the longest run of one color anywhere in seq.
func LongestRun(seq []model.Color) int {
	best, run := 0, 0
	for i, c := range seq {
		if i > 0 && seq[i-1] == c {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func missingColors(seq []model.Color) []model.Color {
	var seen [model.ColorCount]bool
	for _, c := range seq {
		seen[c] = true
	}
	var out []model.Color
	for _, c := range model.Colors {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// Confuser picks the color to speak while lit is shown. When enabled the
// spoken color is redrawn until it differs from lit; after MaxAttempts the
// last draw is used as is.
func (g *Generator) Confuser(lit model.Color, enabled bool) model.Color {
	if !enabled {
		return lit
	}
	var voice model.Color
	for i := 0; i < g.rules.MaxAttempts; i++ {
		voice = g.draw()
		if voice != lit {
			break
		}
	}
	return voice
}

// PickVariant chooses a clip number in [1, count] that differs from last,
// with the same bounded retry as Confuser. last == 0 means nothing played
// yet.
func (g *Generator) PickVariant(count, last int) int {
	if count <= 1 {
		return 1
	}
	var n int
	for i := 0; i < g.rules.MaxAttempts; i++ {
		n = g.rng.Intn(count) + 1
		if n != last {
			break
		}
	}
	return n
}
