package explosion

import (
	"context"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/engine"
	"github.com/tphakala/go-audio-explosion/internal/pipeline"
	"github.com/tphakala/go-audio-explosion/internal/reverb"
)

// Stage names used in errors and logs.
const (
	stageSpeed      = "speed"
	stageTrim       = "trim"
	stageReverb     = "reverb"
	stageReverbTrim = "reverb-trim"
	stageMilestone  = "milestone"
)

// speedStage applies the final speed factor.
type speedStage struct {
	factor float64
}

func newSpeedStage(factor float64) pipeline.Stage {
	return &speedStage{factor: factor}
}

func (s *speedStage) Name() string { return stageSpeed }

func (s *speedStage) Process(_ context.Context, in *buffer.Buffer) (*buffer.Buffer, error) {
	if err := engine.ChangeSpeedInPlace(in, s.factor); err != nil {
		return nil, err
	}
	return in, nil
}

// trimStage drops trailing near-silence.
type trimStage struct {
	name      string
	threshold float64
}

func newTrimStage(name string, threshold float64) pipeline.Stage {
	return &trimStage{name: name, threshold: threshold}
}

func (s *trimStage) Name() string { return s.name }

func (s *trimStage) Process(_ context.Context, in *buffer.Buffer) (*buffer.Buffer, error) {
	buffer.TrimTrailingSilence(in, s.threshold)
	return in, nil
}

// reverbStage appends the synthetic reverb tail. It reports its own
// progress from 0 to 1 as reflections complete.
type reverbStage struct {
	engine      *reverb.Engine
	early, late int
	progress    ProgressSink
}

func newReverbStage(e *reverb.Engine, early, late int, progress ProgressSink) pipeline.Stage {
	return &reverbStage{
		engine:   e,
		early:    early,
		late:     late,
		progress: progress,
	}
}

func (s *reverbStage) Name() string { return stageReverb }

func (s *reverbStage) Process(ctx context.Context, in *buffer.Buffer) (*buffer.Buffer, error) {
	var report reverb.ProgressFunc
	if s.progress != nil {
		report = s.progress.Report
	}
	return s.engine.Apply(ctx, in, s.early, s.late, report)
}

// milestoneStage reports a fixed progress value and passes audio through.
type milestoneStage struct {
	fraction float64
	progress ProgressSink
}

func newMilestoneStage(fraction float64, progress ProgressSink) pipeline.Stage {
	return &milestoneStage{fraction: fraction, progress: progress}
}

func (s *milestoneStage) Name() string { return stageMilestone }

func (s *milestoneStage) Process(_ context.Context, in *buffer.Buffer) (*buffer.Buffer, error) {
	if s.progress != nil {
		s.progress.Report(s.fraction)
	}
	return in, nil
}
