package explosion

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutate_StaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := DefaultParams()

	for range 500 {
		p = Mutate(p, rng)

		assert.GreaterOrEqual(t, p.Layers, 1)
		assert.LessOrEqual(t, p.Layers, 6)
		assert.GreaterOrEqual(t, p.Duration, 0.2)
		assert.LessOrEqual(t, p.Duration, 60.0)
		assert.GreaterOrEqual(t, p.PreExplosions, 0)
		assert.LessOrEqual(t, p.PreExplosions, 5)
		assert.GreaterOrEqual(t, p.PreExplosionDelay, 0.1)
		assert.LessOrEqual(t, p.PreExplosionDelay, 3.0)
		assert.GreaterOrEqual(t, p.PreExplosionLowPassFactor, 0.2)
		assert.LessOrEqual(t, p.PreExplosionLowPassFactor, 0.9)
		assert.GreaterOrEqual(t, p.PreExplosionLowPassIters, 0)
		assert.LessOrEqual(t, p.PreExplosionLowPassIters, 10)
		assert.GreaterOrEqual(t, p.FinalSpeedFactor, 0.1)
		assert.LessOrEqual(t, p.FinalSpeedFactor, 10.0)
		assert.GreaterOrEqual(t, p.EarlyReflections, 1)
		assert.LessOrEqual(t, p.EarlyReflections, 50)
		assert.GreaterOrEqual(t, p.LateReflections, 1)
		assert.LessOrEqual(t, p.LateReflections, 2000)
		assert.NoError(t, p.Validate())
	}
}

func TestMutate_SmallSteps(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := DefaultParams()
	m := Mutate(p, rng)

	assert.InDelta(t, p.Duration, m.Duration, 0.1*(60-0.2)+1e-9)
	assert.InDelta(t, p.FinalSpeedFactor, m.FinalSpeedFactor, 0.1*(10-0.1)+1e-9)
	assert.InDelta(t, p.LateReflections, m.LateReflections, 0.1*(2000-1)+1)
	assert.NotEqual(t, p, m)
}

func TestMutate_KeepsReverbAndInput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := DefaultParams()
	p.Reverb = false
	p.Input = []float64{0.1, 0.2}

	m := Mutate(p, rng)
	assert.False(t, m.Reverb)
	assert.Equal(t, p.Input, m.Input)
}

func TestMutate_Deterministic(t *testing.T) {
	a := Mutate(DefaultParams(), rand.New(rand.NewSource(9)))
	b := Mutate(DefaultParams(), rand.New(rand.NewSource(9)))
	assert.Equal(t, a, b)
}
