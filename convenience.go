package explosion

import (
	"context"
)

// Generate renders one explosion from p with a time-derived seed and the
// default tuning.
//
// Example:
//
//	sound, err := explosion.Generate(ctx, explosion.DefaultParams())
//	if err != nil {
//	    log.Fatal(err)
//	}
func Generate(ctx context.Context, p Params) (*Sound, error) {
	return GenerateSeeded(ctx, p, 0)
}

// GenerateSeeded renders one explosion from p. Equal non-zero seeds give
// identical output.
func GenerateSeeded(ctx context.Context, p Params, seed int64) (*Sound, error) {
	s, err := New(&Config{Params: p, Seed: seed})
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx)
}
