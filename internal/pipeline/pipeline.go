// Package pipeline runs an ordered chain of buffer-transforming stages with
// cooperative cancellation between stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
)

// ErrEmptyPipeline is returned when Run is called without stages.
var ErrEmptyPipeline = errors.New("pipeline has no stages")

// defaultStageCapacity is the initial capacity of the stages slice.
const defaultStageCapacity = 4

// Stage represents a single processing step in the pipeline.
type Stage interface {
	// Name identifies the stage in errors and logs.
	Name() string

	// Process transforms in into a new or modified buffer. The stage owns
	// in for the duration of the call and may return it.
	Process(ctx context.Context, in *buffer.Buffer) (*buffer.Buffer, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	name string
	fn   func(ctx context.Context, in *buffer.Buffer) (*buffer.Buffer, error)
}

// NewStageFunc creates a named stage from fn.
func NewStageFunc(name string, fn func(ctx context.Context, in *buffer.Buffer) (*buffer.Buffer, error)) *StageFunc {
	return &StageFunc{name: name, fn: fn}
}

// Name returns the stage name.
func (s *StageFunc) Name() string { return s.name }

// Process calls the wrapped function.
func (s *StageFunc) Process(ctx context.Context, in *buffer.Buffer) (*buffer.Buffer, error) {
	return s.fn(ctx, in)
}

// Hook observes stage boundaries. Either field may be nil.
type Hook struct {
	// Before is called before stage index starts.
	Before func(index int, stage Stage)

	// After is called after stage index finished, with its output.
	After func(index int, stage Stage, out *buffer.Buffer)
}

// Pipeline is an ordered list of stages.
type Pipeline struct {
	stages []Stage
	hook   Hook
}

// New creates a pipeline from stages.
func New(stages ...Stage) *Pipeline {
	p := &Pipeline{stages: make([]Stage, 0, max(len(stages), defaultStageCapacity))}
	p.stages = append(p.stages, stages...)
	return p
}

// Append adds stages to the end of the pipeline.
func (p *Pipeline) Append(stages ...Stage) {
	p.stages = append(p.stages, stages...)
}

// SetHook installs stage boundary callbacks.
func (p *Pipeline) SetHook(h Hook) {
	p.hook = h
}

// Stages returns the stage names in order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run feeds in through every stage in order. ctx is checked before each
// stage; on cancellation or stage failure the intermediate buffer is dropped
// and the error returned, wrapped with the failing stage's name.
func (p *Pipeline) Run(ctx context.Context, in *buffer.Buffer) (*buffer.Buffer, error) {
	if len(p.stages) == 0 {
		return nil, ErrEmptyPipeline
	}

	cur := in
	for i, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("before stage %q: %w", stage.Name(), err)
		}
		if p.hook.Before != nil {
			p.hook.Before(i, stage)
		}

		out, err := stage.Process(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", stage.Name(), err)
		}
		cur = out

		if p.hook.After != nil {
			p.hook.After(i, stage, cur)
		}
	}
	return cur, nil
}
