// Package audiofile decodes external source material (WAV, MP3, Ogg Vorbis)
// into mono samples at the synthesis rate and encodes finished sounds as
// 16-bit PCM WAV.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/engine"
)

// Common errors.
var (
	// ErrUnsupportedFormat indicates a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrDecode indicates malformed or unsupported audio data.
	ErrDecode = errors.New("audio decode failed")
)

// Clip is decoded audio before conversion to the synthesis format.
type Clip struct {
	// Samples holds interleaved samples in [-1, 1].
	Samples []float64

	// SampleRate is the sample rate in Hz.
	SampleRate int

	// Channels is the number of interleaved channels.
	Channels int
}

// Frames returns the number of sample frames.
func (c *Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Mono averages the channels of c into a single channel.
func (c *Clip) Mono() []float64 {
	if c.Channels <= 1 {
		return slices.Clone(c.Samples)
	}

	frames := c.Frames()
	out := make([]float64, frames)
	inv := 1.0 / float64(c.Channels)
	for f := range frames {
		sum := 0.0
		for _, v := range c.Samples[f*c.Channels : (f+1)*c.Channels] {
			sum += v
		}
		out[f] = sum * inv
	}
	return out
}

// Decoder decodes one container format.
type Decoder interface {
	Decode(r io.ReadSeeker) (*Clip, error)
}

// Registry maps file extensions (lower case, with the leading dot) to
// decoders.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with the WAV, MP3 and Ogg Vorbis
// decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".wav", WAVDecoder{})
	r.Register(".wave", WAVDecoder{})
	r.Register(".mp3", MP3Decoder{})
	r.Register(".ogg", VorbisDecoder{})
	r.Register(".oga", VorbisDecoder{})
	return r
}

// Register associates ext with d, replacing any previous decoder.
func (r *Registry) Register(ext string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[strings.ToLower(ext)] = d
}

// Get returns the decoder for ext.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.codecs[strings.ToLower(ext)]
	return d, ok
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load decodes the file at path, chosen by extension, and returns mono
// samples at buffer.SampleRate.
func (r *Registry) Load(path string) (*Clip, []float64, error) {
	ext := filepath.Ext(path)
	d, ok := r.Get(ext)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	clip, err := d.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	mono, err := ToSynthesisRate(clip)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, mono, nil
}

// ToSynthesisRate downmixes clip and converts it to buffer.SampleRate.
func ToSynthesisRate(clip *Clip) ([]float64, error) {
	if clip.SampleRate <= 0 || clip.Channels <= 0 {
		return nil, fmt.Errorf("%w: invalid format (%d Hz, %d channels)", ErrDecode, clip.SampleRate, clip.Channels)
	}

	mono := buffer.Wrap(clip.Mono())
	if mono.Len() == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrDecode)
	}
	if clip.SampleRate == buffer.SampleRate {
		return mono.Samples(), nil
	}

	converted, err := engine.ConvertRate(mono, clip.SampleRate)
	if err != nil {
		return nil, err
	}
	return converted.Samples(), nil
}
