// Package problemgen produces the next multiplication question, biased
// toward pairs the learner is still weak on.
package problemgen

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/multiplier/internal/logging"
	"github.com/abhisek/multiplier/internal/operand"
	"github.com/abhisek/multiplier/internal/weakness"
)

// Generator draws operand pairs. It is not safe for concurrent use; a
// session owns exactly one.
type Generator struct {
	rnd    *rand.Rand
	cfg    Config
	recent *RecentQueue
	log    logrus.FieldLogger

	guardTrips int
}

// New creates a Generator drawing from rnd.
func New(rnd *rand.Rand, cfg Config) *Generator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.DigitsOperand1 <= 0 {
		cfg.DigitsOperand1 = 1
	}
	if cfg.DigitsOperand2 <= 0 {
		cfg.DigitsOperand2 = 1
	}
	return &Generator{
		rnd:    rnd,
		cfg:    cfg,
		recent: NewRecentQueue(cfg.NonRepeatQueueLength),
		log:    logging.Discard(),
	}
}

// WithLogger sets the logger used for guard diagnostics.
func (g *Generator) WithLogger(l logrus.FieldLogger) *Generator {
	if l != nil {
		g.log = l
	}
	return g
}

// Recent returns the non-repeat queue.
func (g *Generator) Recent() *RecentQueue {
	return g.recent
}

// GuardTrips counts how often the non-repeat window had to be shrunk.
func (g *Generator) GuardTrips() int {
	return g.guardTrips
}

// Next returns the next pair to present. Draws whose canonical pair was
// presented within the non-repeat window are rejected and redrawn. When the
// operand space is too small for the window, the oldest queued pair is
// released every MaxAttempts rejections so Next always returns.
func (g *Generator) Next(weak WeakSource) operand.Pair {
	for attempt := 1; ; attempt++ {
		p := g.draw(weak)
		if !g.recent.Contains(p) {
			g.recent.Push(p)
			return p
		}
		if attempt%g.cfg.MaxAttempts == 0 {
			evicted, ok := g.recent.Evict()
			if ok {
				g.guardTrips++
				g.log.WithFields(logrus.Fields{
					"released": evicted.String(),
					"attempts": attempt,
				}).Warn("non-repeat window larger than operand space")
			}
		}
	}
}

// draw makes one candidate selection: an orientation coin, then a coin per
// non-empty weakness class (errors first), else a fresh pair.
func (g *Generator) draw(weak WeakSource) operand.Pair {
	flip := g.rnd.Intn(2)

	if weak != nil {
		for _, c := range weakness.Classes {
			pairs := weak.Pairs(c)
			if len(pairs) == 0 {
				continue
			}
			if g.rnd.Intn(2) == 1 {
				return pairs[g.rnd.Intn(len(pairs))].Oriented(flip)
			}
		}
	}

	d1, d2 := g.cfg.DigitsOperand1, g.cfg.DigitsOperand2
	if flip == 1 {
		d1, d2 = d2, d1
	}
	return operand.New(g.fresh(d1), g.fresh(d2))
}

// fresh draws uniformly from [2, 10^digits - 1].
func (g *Generator) fresh(digits int) int {
	upper := pow10(digits)
	return 2 + g.rnd.Intn(upper-2)
}

func pow10(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
