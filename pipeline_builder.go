package explosion

import (
	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/pipeline"
	"github.com/tphakala/go-audio-explosion/internal/reverb"
)

// buildFinishingPipeline constructs the stages that turn the combined
// explosion into the final sound: speed change and trim, then either the
// reverb tail with a second trim or a plain progress milestone.
func buildFinishingPipeline(p *Params, t *Tuning, rev *reverb.Engine, progress ProgressSink, log logrus.FieldLogger) *pipeline.Pipeline {
	pl := pipeline.New(
		newSpeedStage(p.FinalSpeedFactor),
		newTrimStage(stageTrim, t.SilenceThreshold),
	)

	if p.Reverb {
		pl.Append(
			newReverbStage(rev, p.EarlyReflections, p.LateReflections, progress),
			newTrimStage(stageReverbTrim, t.SilenceThreshold),
		)
	} else {
		pl.Append(newMilestoneStage(progressFinished, progress))
	}

	pl.SetHook(pipeline.Hook{
		Before: func(index int, stage pipeline.Stage) {
			log.WithFields(logrus.Fields{
				"stage": stage.Name(),
				"index": index,
			}).Debug("stage started")
		},
		After: func(index int, stage pipeline.Stage, out *buffer.Buffer) {
			log.WithFields(logrus.Fields{
				"stage":   stage.Name(),
				"index":   index,
				"samples": out.Len(),
			}).Debug("stage finished")
		},
	})

	return pl
}
