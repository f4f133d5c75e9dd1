package audiofile

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV encoding constants.
const (
	wavBitDepth    = 16
	wavPCMFormat   = 1
	wavMonoChans   = 1
	wavMaxInt16    = math.MaxInt16
	wavMinBitDepth = 8
)

// WAVDecoder decodes PCM WAV files of any bit depth.
type WAVDecoder struct{}

// Decode reads the whole file.
func (WAVDecoder) Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file", ErrDecode)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth < wavMinBitDepth {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrDecode, bitDepth)
	}

	scale := 1.0 / float64(int64(1)<<(bitDepth-1))
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) * scale
	}

	return &Clip{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
	}, nil
}

// WriteWAV encodes mono samples as 16-bit PCM. Samples outside [-1, 1] are
// clipped.
func WriteWAV(w io.WriteSeeker, samples []float64, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, wavMonoChans, wavPCMFormat)

	ints := make([]int, len(samples))
	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		ints[i] = int(math.Round(v * wavMaxInt16))
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: wavMonoChans,
			SampleRate:  sampleRate,
		},
		Data:           ints,
		SourceBitDepth: wavBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}

// SaveWAV writes samples to a new WAV file at path.
func SaveWAV(path string, samples []float64, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return WriteWAV(f, samples, sampleRate)
}
