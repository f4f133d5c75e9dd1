package explosion

import (
	"math"
	"sync/atomic"
)

// ProgressSink receives synthesis progress as a fraction in [0, 1].
// Report is called from the synthesizing goroutine.
type ProgressSink interface {
	Report(fraction float64)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(fraction float64)

// Report calls f(fraction).
func (f ProgressFunc) Report(fraction float64) {
	f(fraction)
}

// Progress is a ProgressSink whose latest value can be read from any
// goroutine without locking. Reads may observe a stale value.
type Progress struct {
	bits atomic.Uint64
}

// Report stores fraction.
func (p *Progress) Report(fraction float64) {
	p.bits.Store(math.Float64bits(fraction))
}

// Value returns the most recently reported fraction.
func (p *Progress) Value() float64 {
	return math.Float64frombits(p.bits.Load())
}

// multiSink fans a report out to several sinks.
type multiSink []ProgressSink

func (m multiSink) Report(fraction float64) {
	for _, s := range m {
		s.Report(fraction)
	}
}

// joinSinks combines the non-nil sinks. It returns nil when none remain.
func joinSinks(sinks ...ProgressSink) ProgressSink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}
