// Package buffer implements the in-memory sample buffer that every synthesis
// stage reads and produces, plus the elementwise operations shared between
// stages (accumulate, renormalize, amplify, delay, trim).
package buffer

import (
	"errors"
	"fmt"
)

// Common errors returned by buffer operations and the stages built on them.
var (
	// ErrInvalidArgument indicates a non-positive factor, an empty buffer or
	// an out-of-range length.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceExhausted indicates a request for more samples than MaxSamples.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// SampleRate is the fixed sample rate shared by all buffers, in Hz.
const SampleRate = 44100

// MaxSamples caps a single allocation (30 minutes of mono audio).
const MaxSamples = 30 * 60 * SampleRate

// Buffer is a mono sequence of float64 samples with a logical length.
//
// The logical length can be shorter than the backing storage after
// Truncate or TrimTrailingSilence. A Buffer is owned by one stage at a time
// and is not safe for concurrent use.
type Buffer struct {
	samples []float64
}

// New creates a silent buffer of n samples.
func New(n int) (*Buffer, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative buffer length %d", ErrInvalidArgument, n)
	}
	if n > MaxSamples {
		return nil, fmt.Errorf("%w: %d samples exceeds limit of %d", ErrResourceExhausted, n, MaxSamples)
	}
	return &Buffer{samples: make([]float64, n)}, nil
}

// FromSamples creates a buffer holding a copy of s.
func FromSamples(s []float64) *Buffer {
	samples := make([]float64, len(s))
	copy(samples, s)
	return &Buffer{samples: samples}
}

// Wrap creates a buffer that takes ownership of s without copying.
func Wrap(s []float64) *Buffer {
	return &Buffer{samples: s}
}

// Len returns the logical sample count.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the allocated capacity in samples.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Samples returns the samples up to the logical length.
// The returned slice aliases the buffer.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// At returns sample i.
func (b *Buffer) At(i int) float64 {
	return b.samples[i]
}

// Copy returns a deep copy of the logical samples.
func (b *Buffer) Copy() *Buffer {
	return FromSamples(b.samples)
}

// Replace swaps the buffer contents for s. The buffer takes ownership of s.
func (b *Buffer) Replace(s []float64) {
	b.samples = s
}

// Truncate shrinks the logical length to n without touching storage.
// Values of n at or above the current length leave the buffer unchanged.
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(b.samples) {
		b.samples = b.samples[:n]
	}
}

// grow extends the logical length to n, zero-filling new samples.
func (b *Buffer) grow(n int) {
	if n <= len(b.samples) {
		return
	}
	if n <= cap(b.samples) {
		old := len(b.samples)
		b.samples = b.samples[:n]
		clear(b.samples[old:])
		return
	}
	grown := make([]float64, n)
	copy(grown, b.samples)
	b.samples = grown
}
