package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/AnyUserName/img2fbm/internal/bitmap"
	"github.com/AnyUserName/img2fbm/internal/convert"
	"github.com/AnyUserName/img2fbm/internal/encoder"
	"github.com/AnyUserName/img2fbm/internal/hasher"
	"github.com/AnyUserName/img2fbm/internal/manifest"
	"github.com/AnyUserName/img2fbm/internal/params"
	"github.com/AnyUserName/img2fbm/internal/preview"
)

// SourceResult holds the result of processing a single source image.
type SourceResult struct {
	Source Source
	Layout Layout
	// Frames is the number of converted frames after cutting.
	Frames int
	// Unique is the number of distinct bitmaps among them.
	Unique int
	// Meta is set for animations written to the device layout.
	Meta *manifest.Meta
	// Files lists everything written, in order.
	Files []string
	// Bytes is the total size of the written device files.
	Bytes int64
	Err   error
}

// processSource handles one source: decode, cut, convert, write.
func (p *Pipeline) processSource(src Source, replaceManifest bool) SourceResult {
	res := SourceResult{
		Source: src,
		Layout: NewLayout(src, p.cfg.DolphinDir, p.cfg.Params.Width, p.cfg.Params.Height),
	}

	frames, err := LoadFrames(src)
	if err != nil {
		res.Err = err
		return res
	}
	if src.Kind == KindAnimation {
		if frames, err = CutFrames(frames, p.cfg.Cut); err != nil {
			res.Err = fmt.Errorf("%s: %w", src.Path, err)
			return res
		}
		ApplySpeed(frames, p.cfg.Speed)
	}

	bms := convertFrames(frames, p.cfg.Params, p.cfg.Workers)
	res.Frames = len(bms)
	p.logf("converted %s: %d frame(s)", src.Path, len(bms))

	unique, data := dedupe(bms, frames)
	res.Unique = len(unique)

	if !p.cfg.OnlyPreview {
		if src.Kind == KindAnimation {
			err = p.writeAnimation(&res, unique, data, replaceManifest)
		} else {
			err = res.writeFile(res.Layout.PictureBM, bms[0].Bytes(), true)
		}
		if err != nil {
			res.Err = err
			return res
		}
	}

	if p.cfg.Preview || p.cfg.OnlyPreview {
		if err := p.writePreview(&res, bms, frames); err != nil {
			res.Err = err
			return res
		}
	}
	return res
}

func (p *Pipeline) writeAnimation(res *SourceResult, unique []*bitmap.Bitmap, data []manifest.FrameData, replaceManifest bool) error {
	l := res.Layout
	if err := os.MkdirAll(l.AnimDir, 0o755); err != nil {
		return fmt.Errorf("create animation dir: %w", err)
	}
	for i, bm := range unique {
		if err := res.writeFile(l.FramePath(i), bm.Bytes(), true); err != nil {
			return err
		}
	}

	meta, err := manifest.NewMeta(p.cfg.Params.Height, data)
	if err != nil {
		return fmt.Errorf("%s: %w", res.Source.Path, err)
	}
	if err := manifest.WriteMeta(meta, l.MetaPath); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	res.Meta = meta
	res.Files = append(res.Files, l.MetaPath)

	if l.WithManifest {
		if err := manifest.AppendEntry(l.ManifestPath, manifest.NewEntry(l.AnimName), replaceManifest); err != nil {
			return fmt.Errorf("update manifest: %w", err)
		}
		res.Files = append(res.Files, l.ManifestPath)
		p.logf("manifest: %s += %s", l.ManifestPath, l.AnimName)
	}
	return nil
}

func (p *Pipeline) writePreview(res *SourceResult, bms []*bitmap.Bitmap, frames []Frame) error {
	enc := p.registry.ForFrames(len(bms))
	if enc == nil {
		return fmt.Errorf("no preview encoder for %d frame(s)", len(bms))
	}

	out := make([]encoder.Frame, len(bms))
	for i, bm := range bms {
		out[i] = encoder.Frame{
			Image: preview.Render(bm, p.cfg.PreviewScale),
			Delay: time.Duration(frames[i].Duration * float32(time.Millisecond)),
		}
	}
	data, err := enc.Encode(out)
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}

	return res.writeFile(res.Layout.PreviewPath(enc.Extension()), data, false)
}

func (r *SourceResult) writeFile(path string, data []byte, device bool) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	r.Files = append(r.Files, path)
	if device {
		r.Bytes += int64(len(data))
	}
	return nil
}

// convertFrames converts every frame on a bounded pool of goroutines.
// Results keep the frame order.
func convertFrames(frames []Frame, prm params.Params, workers int) []*bitmap.Bitmap {
	results := make([]*bitmap.Bitmap, len(frames))
	var wg sync.WaitGroup
	sem := make(chan struct{}, max(workers, 1))

	for i, f := range frames {
		wg.Add(1)
		go func(idx int, f Frame) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = convert.Convert(f.Image, prm)
		}(i, f)
	}
	wg.Wait()
	return results
}

// dedupe collapses identical bitmaps. Indices follow the order of first
// appearance; every input frame keeps its own duration.
func dedupe(bms []*bitmap.Bitmap, frames []Frame) ([]*bitmap.Bitmap, []manifest.FrameData) {
	var unique []*bitmap.Bitmap
	seen := map[uint64][]int{}
	data := make([]manifest.FrameData, len(bms))

	for i, bm := range bms {
		key := hasher.FrameKey(bm.Bytes())
		idx := -1
		for _, u := range seen[key] {
			if bytes.Equal(unique[u].Bytes(), bm.Bytes()) {
				idx = u
				break
			}
		}
		if idx < 0 {
			idx = len(unique)
			unique = append(unique, bm)
			seen[key] = append(seen[key], idx)
		}
		data[i] = manifest.FrameData{Index: idx, Duration: frames[i].Duration}
	}
	return unique, data
}
