package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/AnyUserName/img2fbm/internal/encoder"
	"github.com/AnyUserName/img2fbm/internal/params"
)

// DefaultPreviewScale is the preview upscale factor when none is given.
const DefaultPreviewScale = 3

// Config holds all parameters for a conversion run.
type Config struct {
	// Source is an image file or a directory of images.
	Source string
	// DolphinDir receives animations and manifest.txt. Empty means next
	// to the source, without a manifest entry.
	DolphinDir string
	Params     params.Params
	Cut        params.FrameCut
	Speed      float32

	Preview      bool
	OnlyPreview  bool
	PreviewScale int

	// ReplaceManifest rewrites manifest.txt instead of appending to it.
	ReplaceManifest bool
	Workers         int
	Verbose         bool
	// Log receives verbose output. Defaults to os.Stderr.
	Log io.Writer
}

// Pipeline orchestrates source conversion.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// Result summarizes a run.
type Result struct {
	Sources []SourceResult
	Failed  int
}

// Frames returns the number of converted frames over successful sources.
func (r *Result) Frames() int {
	n := 0
	for _, s := range r.Sources {
		if s.Err == nil {
			n += s.Frames
		}
	}
	return n
}

// Bytes returns the total size of the written device files.
func (r *Result) Bytes() int64 {
	var n int64
	for _, s := range r.Sources {
		n += s.Bytes
	}
	return n
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Speed == 0 {
		cfg.Speed = 1
	}
	if cfg.PreviewScale <= 0 {
		cfg.PreviewScale = DefaultPreviewScale
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

// Run converts every source and returns the per-source results. Sources
// are handled one after another so manifest entries keep their order.
// The run fails only when no source could be converted.
func (p *Pipeline) Run() (*Result, error) {
	if err := p.cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if !(p.cfg.Speed > 0) {
		return nil, fmt.Errorf("%w: speed must be positive, got %g", params.ErrInvalidValue, p.cfg.Speed)
	}
	p.logf("%s", p.registry.String())

	sources, err := ScanSources(p.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.Source)
	}
	p.logf("found %d source(s)", len(sources))

	if p.cfg.DolphinDir != "" && !p.cfg.OnlyPreview {
		if err := os.MkdirAll(p.cfg.DolphinDir, 0o755); err != nil {
			return nil, fmt.Errorf("create dolphin dir: %w", err)
		}
	}

	res := &Result{Sources: make([]SourceResult, 0, len(sources))}
	replace := p.cfg.ReplaceManifest
	var errs []error
	for _, src := range sources {
		p.logf("processing: %s (%s)", src.Path, src.Kind)
		r := p.processSource(src, replace)
		if r.Err != nil {
			errs = append(errs, r.Err)
			res.Failed++
		} else {
			if r.Meta != nil && r.Layout.WithManifest {
				replace = false
			}
			p.logf("done: %s (%d frame(s), %d unique)", src.Path, r.Frames, r.Unique)
		}
		res.Sources = append(res.Sources, r)
	}

	if len(errs) > 0 {
		for _, e := range errs {
			p.warnf("error: %v", e)
		}
		if len(errs) == len(sources) {
			return res, fmt.Errorf("all %d source(s) failed: %w", len(errs), errors.Join(errs...))
		}
		p.warnf("warning: %d of %d sources had errors", len(errs), len(sources))
	}
	return res, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(p.cfg.Log, "[img2fbm] "+format+"\n", args...)
	}
}

// warnf prints regardless of verbosity.
func (p *Pipeline) warnf(format string, args ...any) {
	fmt.Fprintf(p.cfg.Log, "[img2fbm] "+format+"\n", args...)
}
