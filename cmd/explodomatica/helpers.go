package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	explosion "github.com/tphakala/go-audio-explosion"
	"github.com/tphakala/go-audio-explosion/internal/analysis"
)

// errUsage is returned when the command line cannot be parsed.
var errUsage = errors.New("usage error")

const (
	requiredArgs = 1
	percentScale = 100
)

// options holds the parsed command line.
type options struct {
	preset     string
	presetFile string
	savePreset string
	input      string
	output     string
	seed       int64
	mutate     bool
	count      int
	parallel   bool
	play       bool
	report     bool
	verbose    bool

	// Explosion parameters and the names of the flags set explicitly.
	params explosion.Params
	set    map[string]bool
}

// Flag names of the explosion parameters.
const (
	flagDuration      = "duration"
	flagLayers        = "layers"
	flagPreExplosions = "pre-explosions"
	flagPreDelay      = "pre-delay"
	flagPreLPFactor   = "pre-lp-factor"
	flagPreLPIters    = "pre-lp-iters"
	flagSpeed         = "speed"
	flagReverb        = "reverb"
	flagEarly         = "early"
	flagLate          = "late"
)

// parseOptions parses args (without the program name).
func parseOptions(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("explodomatica", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{set: make(map[string]bool)}
	d := explosion.DefaultParams()

	fs.StringVar(&o.preset, "preset", explosion.PresetDefault, "Built-in preset: "+strings.Join(explosion.PresetNames(), ", "))
	fs.StringVar(&o.presetFile, "preset-file", "", "Load parameters from a JSON preset file (overrides -preset)")
	fs.StringVar(&o.savePreset, "save-preset", "", "Write the final parameters to a JSON preset file")
	fs.StringVar(&o.input, "input", "", "Use samples from a WAV, MP3 or Ogg Vorbis file instead of noise")
	fs.Int64Var(&o.seed, "seed", 0, "Random seed (0 = time based)")
	fs.BoolVar(&o.mutate, "mutate", false, "Randomly alter all parameters by a small amount")
	fs.IntVar(&o.count, "count", 1, "Number of variants to render")
	fs.BoolVar(&o.parallel, "parallel", true, "Render variants concurrently")
	fs.BoolVar(&o.play, "play", false, "Play the result after saving")
	fs.BoolVar(&o.report, "report", false, "Print peak, RMS and spectral centroid of each output")
	fs.BoolVar(&o.verbose, "v", false, "Verbose output")

	fs.Float64Var(&o.params.Duration, flagDuration, d.Duration, "Duration of the main explosion in seconds")
	fs.IntVar(&o.params.Layers, flagLayers, d.Layers, fmt.Sprintf("Sound layers per explosion (1-%d)", explosion.MaxLayers))
	fs.IntVar(&o.params.PreExplosions, flagPreExplosions, d.PreExplosions, "Number of pre-explosions")
	fs.Float64Var(&o.params.PreExplosionDelay, flagPreDelay, d.PreExplosionDelay, "Largest pre-explosion offset in seconds")
	fs.Float64Var(&o.params.PreExplosionLowPassFactor, flagPreLPFactor, d.PreExplosionLowPassFactor, "Pre-explosion low-pass factor (lower is darker)")
	fs.IntVar(&o.params.PreExplosionLowPassIters, flagPreLPIters, d.PreExplosionLowPassIters, "Pre-explosion low-pass passes")
	fs.Float64Var(&o.params.FinalSpeedFactor, flagSpeed, d.FinalSpeedFactor, "Final speed factor (>1 faster, <1 slower)")
	fs.BoolVar(&o.params.Reverb, flagReverb, d.Reverb, "Add the reverb tail")
	fs.IntVar(&o.params.EarlyReflections, flagEarly, d.EarlyReflections, "Reverb early reflections")
	fs.IntVar(&o.params.LateReflections, flagLate, d.LateReflections, "Reverb late reflections")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: explodomatica [options] output.wav\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	if fs.NArg() != requiredArgs {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected exactly one output file", errUsage)
	}
	o.output = fs.Arg(0)

	if o.count < 1 {
		return nil, fmt.Errorf("%w: -count must be at least 1", errUsage)
	}

	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// resolveParams returns the preset parameters overridden by every
// explicitly set parameter flag.
func (o *options) resolveParams() (explosion.Params, error) {
	var (
		p   explosion.Params
		err error
	)
	if o.presetFile != "" {
		p, err = loadPresetFile(o.presetFile)
	} else {
		p, err = explosion.Preset(o.preset)
	}
	if err != nil {
		return explosion.Params{}, err
	}

	overrides := map[string]func(){
		flagDuration:      func() { p.Duration = o.params.Duration },
		flagLayers:        func() { p.Layers = o.params.Layers },
		flagPreExplosions: func() { p.PreExplosions = o.params.PreExplosions },
		flagPreDelay:      func() { p.PreExplosionDelay = o.params.PreExplosionDelay },
		flagPreLPFactor:   func() { p.PreExplosionLowPassFactor = o.params.PreExplosionLowPassFactor },
		flagPreLPIters:    func() { p.PreExplosionLowPassIters = o.params.PreExplosionLowPassIters },
		flagSpeed:         func() { p.FinalSpeedFactor = o.params.FinalSpeedFactor },
		flagReverb:        func() { p.Reverb = o.params.Reverb },
		flagEarly:         func() { p.EarlyReflections = o.params.EarlyReflections },
		flagLate:          func() { p.LateReflections = o.params.LateReflections },
	}
	for name, apply := range overrides {
		if o.set[name] {
			apply()
		}
	}

	if err := p.Validate(); err != nil {
		return explosion.Params{}, err
	}
	return p, nil
}

func loadPresetFile(path string) (explosion.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return explosion.Params{}, fmt.Errorf("failed to open preset: %w", err)
	}
	defer func() { _ = f.Close() }()

	p, err := explosion.LoadPreset(f)
	if err != nil {
		return explosion.Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func savePresetFile(path string, p explosion.Params) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return explosion.SavePreset(f, p)
}

// variantPath returns the output path of variant i of n. A single variant
// keeps path unchanged; otherwise a 1-based index is inserted before the
// extension.
func variantPath(path string, i, n int) string {
	if n == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func printReport(w io.Writer, path string, r analysis.Report) {
	_, _ = fmt.Fprintf(w, "%s:\n", path)
	_, _ = fmt.Fprintf(w, "  samples:           %d (%.3f s)\n", r.Samples, r.DurationSeconds)
	_, _ = fmt.Fprintf(w, "  peak:              %.4f (%.1f dBFS)\n", r.Peak, r.PeakDBFS)
	_, _ = fmt.Fprintf(w, "  rms:               %.4f (%.1f dBFS)\n", r.RMS, r.RMSDBFS)
	_, _ = fmt.Fprintf(w, "  spectral centroid: %.1f Hz\n", r.SpectralCentroid)
}

// progressBar draws a single-line progress bar. It is a no-op when the
// output is not a terminal. Safe for concurrent use.
type progressBar struct {
	mu      sync.Mutex
	w       io.Writer
	width   int
	enabled bool
	last    int
}

func newProgressBar(w io.Writer, width int, enabled bool) *progressBar {
	return &progressBar{w: w, width: width, enabled: enabled, last: -1}
}

// Report redraws the bar when the percentage changed.
func (b *progressBar) Report(fraction float64) {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	pct := int(min(max(fraction, 0), 1) * percentScale)
	if pct == b.last {
		return
	}
	b.last = pct
	_, _ = fmt.Fprintf(b.w, "\r%s %3d%%", renderBar(fraction, b.width), pct)
}

// Finish ends the bar line.
func (b *progressBar) Finish() {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last >= 0 {
		_, _ = fmt.Fprintln(b.w)
	}
	b.last = -1
}

// renderBar returns a bar of width cells filled to fraction.
func renderBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
