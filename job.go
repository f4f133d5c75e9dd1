package explosion

import (
	"context"
	"fmt"
)

// Job is a synthesis running on a background goroutine. The worker owns the
// whole pipeline run; callers poll Progress and collect the result with Wait.
type Job struct {
	progress Progress
	cancel   context.CancelFunc
	done     chan struct{}

	// Written once by the worker before done is closed.
	sound *Sound
	err   error
}

// Start validates config and begins synthesis in the background. The job
// stops early when ctx is cancelled or Cancel is called. config.Progress, if
// set, still receives every report.
func Start(ctx context.Context, config *Config) (*Job, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidArgument)
	}

	j := &Job{done: make(chan struct{})}

	cfg := *config
	cfg.Progress = joinSinks(&j.progress, config.Progress)

	s, err := New(&cfg)
	if err != nil {
		return nil, err
	}

	ctx, j.cancel = context.WithCancel(ctx)
	go j.run(ctx, s)

	return j, nil
}

func (j *Job) run(ctx context.Context, s *Synthesizer) {
	defer close(j.done)
	defer j.cancel()
	j.sound, j.err = s.Generate(ctx)
}

// Progress returns the latest reported fraction in [0, 1].
func (j *Job) Progress() float64 {
	return j.progress.Value()
}

// Done returns a channel closed when the job has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel requests the job to stop. It does not wait for the worker.
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the job finishes and returns its result.
func (j *Job) Wait() (*Sound, error) {
	<-j.done
	return j.sound, j.err
}

// Result returns the job's result without blocking, or ErrJobRunning if the
// job has not finished.
func (j *Job) Result() (*Sound, error) {
	select {
	case <-j.done:
		return j.sound, j.err
	default:
		return nil, ErrJobRunning
	}
}
