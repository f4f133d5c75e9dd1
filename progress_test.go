package explosion

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_ConcurrentReadWrite(t *testing.T) {
	var p Progress
	assert.Zero(t, p.Value())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			p.Report(float64(i) / 999)
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			v := p.Value()
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}()
	wg.Wait()

	assert.InDelta(t, 1.0, p.Value(), 1e-12)
}

func TestProgressFunc(t *testing.T) {
	var got float64
	var sink ProgressSink = ProgressFunc(func(f float64) { got = f })
	sink.Report(0.42)
	assert.InDelta(t, 0.42, got, 1e-12)
}

func TestJoinSinks(t *testing.T) {
	assert.Nil(t, joinSinks())
	assert.Nil(t, joinSinks(nil, nil))

	var p Progress
	assert.Same(t, &p, joinSinks(nil, &p))

	rec := &recorder{}
	joined := joinSinks(&p, nil, rec)
	joined.Report(0.5)
	assert.InDelta(t, 0.5, p.Value(), 1e-12)
	assert.Equal(t, []float64{0.5}, rec.values)
}
