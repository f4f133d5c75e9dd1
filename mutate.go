package explosion

import (
	"math"
	"math/rand"
)

// mutateFraction is the largest change applied by Mutate, relative to the
// width of each parameter's range.
const mutateFraction = 0.1

// paramRange is the editable range of one parameter.
type paramRange struct {
	min, max float64
}

// Editable parameter ranges.
var (
	layersRange        = paramRange{1, 6}
	durationRange      = paramRange{0.2, 60}
	preExplosionsRange = paramRange{0, 5}
	preDelayRange      = paramRange{0.1, 3}
	preLowPassRange    = paramRange{0.2, 0.9}
	preLowPassItRange  = paramRange{0, 10}
	speedRange         = paramRange{0.1, 10}
	earlyRange         = paramRange{1, 50}
	lateRange          = paramRange{1, 2000}
)

// Mutate returns a copy of p with every numeric parameter nudged by a random
// amount of up to a tenth of its editable range, clamped to that range.
// Counts stay integral. Reverb and Input are unchanged.
func Mutate(p Params, rng *rand.Rand) Params {
	p.Layers = layersRange.nudgeInt(rng, p.Layers)
	p.Duration = durationRange.nudge(rng, p.Duration)
	p.PreExplosions = preExplosionsRange.nudgeInt(rng, p.PreExplosions)
	p.PreExplosionDelay = preDelayRange.nudge(rng, p.PreExplosionDelay)
	p.PreExplosionLowPassFactor = preLowPassRange.nudge(rng, p.PreExplosionLowPassFactor)
	p.PreExplosionLowPassIters = preLowPassItRange.nudgeInt(rng, p.PreExplosionLowPassIters)
	p.FinalSpeedFactor = speedRange.nudge(rng, p.FinalSpeedFactor)
	p.EarlyReflections = earlyRange.nudgeInt(rng, p.EarlyReflections)
	p.LateReflections = lateRange.nudgeInt(rng, p.LateReflections)
	return p
}

func (r paramRange) nudge(rng *rand.Rand, v float64) float64 {
	delta := (2*rng.Float64() - 1) * mutateFraction * (r.max - r.min)
	return r.clamp(v + delta)
}

func (r paramRange) nudgeInt(rng *rand.Rand, v int) int {
	return int(math.Round(r.nudge(rng, float64(v))))
}

func (r paramRange) clamp(v float64) float64 {
	return math.Min(math.Max(v, r.min), r.max)
}
