package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces 16-bit little-endian stereo PCM.
const (
	mp3Channels       = 2
	mp3BytesPerSample = 2
	mp3Scale          = 1.0 / 32768.0
)

// MP3Decoder decodes MPEG-1/2 Layer III files.
type MP3Decoder struct{}

// Decode reads the whole stream.
func (MP3Decoder) Decode(r io.ReadSeeker) (*Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return &Clip{
		Samples:    pcm16ToFloat(pcm),
		SampleRate: dec.SampleRate(),
		Channels:   mp3Channels,
	}, nil
}

// pcm16ToFloat converts little-endian int16 PCM to floats in [-1, 1).
// A trailing odd byte is ignored.
func pcm16ToFloat(pcm []byte) []float64 {
	out := make([]float64, len(pcm)/mp3BytesPerSample)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(pcm[i*mp3BytesPerSample:]))
		out[i] = float64(v) * mp3Scale
	}
	return out
}
