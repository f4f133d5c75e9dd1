package explosion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_Completes(t *testing.T) {
	rec := &recorder{}
	job, err := Start(context.Background(), &Config{Params: dryParams(), Seed: 8, Progress: rec})
	require.NoError(t, err)

	sound, err := job.Wait()
	require.NoError(t, err)
	assert.Positive(t, sound.Len())

	select {
	case <-job.Done():
	default:
		t.Fatal("Done not closed after Wait returned")
	}

	assert.InDelta(t, 1.0, job.Progress(), 1e-12)
	assert.Equal(t, []float64{0.33, 0.5, 0.8, 0.9, 1.0}, rec.values)

	again, err := job.Result()
	require.NoError(t, err)
	assert.Same(t, sound, again)
}

func TestStart_MatchesSynchronousRun(t *testing.T) {
	job, err := Start(context.Background(), &Config{Params: dryParams(), Seed: 77})
	require.NoError(t, err)
	async, err := job.Wait()
	require.NoError(t, err)

	sync, err := GenerateSeeded(context.Background(), dryParams(), 77)
	require.NoError(t, err)

	assert.Equal(t, sync.Samples, async.Samples)
}

func TestStart_InvalidConfig(t *testing.T) {
	_, err := Start(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	p := dryParams()
	p.FinalSpeedFactor = -1
	_, err = Start(context.Background(), &Config{Params: p})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestJob_Cancel(t *testing.T) {
	p := DefaultParams()
	p.Duration = 20
	p.Layers = MaxLayers
	p.LateReflections = 2000

	job, err := Start(context.Background(), &Config{Params: p, Seed: 3})
	require.NoError(t, err)

	job.Cancel()

	select {
	case <-job.Done():
	case <-time.After(30 * time.Second):
		t.Fatal("job did not stop after Cancel")
	}

	sound, err := job.Wait()
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sound)
}

func TestJob_ParentContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job, err := Start(ctx, &Config{Params: dryParams(), Seed: 3})
	require.NoError(t, err)

	_, err = job.Wait()
	require.ErrorIs(t, err, context.Canceled)
}
