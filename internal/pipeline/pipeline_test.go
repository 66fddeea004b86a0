package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/img2fbm/internal/bitmap"
	"github.com/AnyUserName/img2fbm/internal/manifest"
	"github.com/AnyUserName/img2fbm/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	green = color.NRGBA{0, 255, 0, 255}
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func paletted(r image.Rectangle, c color.Color) *image.Paletted {
	return image.NewPaletted(r, color.Palette{c})
}

// writeGIF writes one solid frame per color with the given delays.
func writeGIF(t *testing.T, path string, w, h int, colors []color.Color, delays []int) {
	t.Helper()
	g := &gif.GIF{}
	for i, c := range colors {
		g.Image = append(g.Image, image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{c, color.White}))
		g.Delay = append(g.Delay, delays[i])
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		path   string
		name   string
		format string
		kind   Kind
	}{
		{"img/cat.PNG", "cat", "png", KindPicture},
		{"img/photo.jpg", "photo", "jpeg", KindPicture},
		{"scan.tif", "scan", "tiff", KindPicture},
		{"a/b/dance.gif", "dance", "gif", KindAnimation},
		{"x.y.webp", "x.y", "webp", KindPicture},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			src, err := NewSource(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.name, src.Name)
			assert.Equal(t, tt.format, src.Format)
			assert.Equal(t, tt.kind, src.Kind)
			assert.Equal(t, filepath.Dir(tt.path), src.Dir)
		})
	}

	_, err := NewSource("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestScanSources(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"a.png", "b.gif", "c_preview.png", "notes.txt", ".hidden/x.png", "sub/d.jpg"} {
		touch(t, filepath.Join(dir, f))
	}

	sources, err := ScanSources(dir)
	require.NoError(t, err)

	var paths []string
	for _, s := range sources {
		paths = append(paths, s.Path)
	}
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.gif"),
		filepath.Join(dir, "sub", "d.jpg"),
	}, paths)

	single, err := ScanSources(filepath.Join(dir, "b.gif"))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, KindAnimation, single[0].Kind)

	_, err = ScanSources(filepath.Join(dir, "notes.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNewLayout(t *testing.T) {
	src, err := NewSource(filepath.Join("img", "cat.gif"))
	require.NoError(t, err)

	l := NewLayout(src, "", 128, 48)
	assert.Equal(t, filepath.Join("img", "cat.bm"), l.PictureBM)
	assert.Equal(t, filepath.Join("img", "cat_preview.png"), l.PreviewPath("png"))
	assert.Equal(t, filepath.Join("img", "cat_preview.gif"), l.PreviewPath("gif"))
	assert.Equal(t, "cat_128x48", l.AnimName)
	assert.Equal(t, filepath.Join("img", "cat_128x48"), l.AnimDir)
	assert.False(t, l.WithManifest)

	l = NewLayout(src, "dolphin", 128, 64)
	assert.True(t, l.WithManifest)
	assert.Equal(t, filepath.Join("dolphin", "cat_128x64", "meta.txt"), l.MetaPath)
	assert.Equal(t, filepath.Join("dolphin", "manifest.txt"), l.ManifestPath)
	assert.Equal(t, filepath.Join("dolphin", "cat_128x64", "frame_3.bm"), l.FramePath(3))
}

func framesWithDurations(ds ...float32) []Frame {
	frames := make([]Frame, len(ds))
	for i, d := range ds {
		frames[i] = Frame{Image: solid(1, 1, color.Black), Duration: d}
	}
	return frames
}

func TestCutFrames(t *testing.T) {
	frames := framesWithDurations(1, 2, 3, 4, 5)

	got, err := CutFrames(frames, params.FrameCut{Start: 1, End: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, float32(2), got[0].Duration)
	assert.Equal(t, float32(3), got[1].Duration)

	got, err = CutFrames(frames, params.FrameCut{})
	require.NoError(t, err)
	assert.Len(t, got, 5)

	_, err = CutFrames(frames, params.FrameCut{Start: 3, End: 2})
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestApplySpeed(t *testing.T) {
	frames := framesWithDurations(100, 50)
	ApplySpeed(frames, 2)
	assert.Equal(t, float32(50), frames[0].Duration)
	assert.Equal(t, float32(25), frames[1].Duration)
}

func rowOf(t *testing.T, f Frame) []color.NRGBA {
	t.Helper()
	img, ok := f.Image.(*image.NRGBA)
	require.True(t, ok)
	row := make([]color.NRGBA, img.Bounds().Dx())
	for x := range row {
		row[x] = img.NRGBAAt(x, 0)
	}
	return row
}

func TestCompositeGIFDisposalBackground(t *testing.T) {
	g := &gif.GIF{
		Image: []*image.Paletted{
			paletted(image.Rect(0, 0, 4, 1), red),
			paletted(image.Rect(1, 0, 2, 1), blue),
			paletted(image.Rect(2, 0, 3, 1), green),
		},
		Delay:    []int{0, 5, 10},
		Disposal: []byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 4, Height: 1},
	}

	frames := compositeGIF(g)
	require.Len(t, frames, 3)

	none := color.NRGBA{}
	assert.Equal(t, []color.NRGBA{red, red, red, red}, rowOf(t, frames[0]))
	assert.Equal(t, []color.NRGBA{red, blue, red, red}, rowOf(t, frames[1]))
	assert.Equal(t, []color.NRGBA{red, none, green, red}, rowOf(t, frames[2]))

	assert.Equal(t, float32(defaultDelayMS), frames[0].Duration)
	assert.Equal(t, float32(50), frames[1].Duration)
	assert.Equal(t, float32(100), frames[2].Duration)
}

func TestCompositeGIFDisposalPrevious(t *testing.T) {
	g := &gif.GIF{
		Image: []*image.Paletted{
			paletted(image.Rect(0, 0, 4, 1), red),
			paletted(image.Rect(0, 0, 1, 1), blue),
			paletted(image.Rect(3, 0, 4, 1), green),
		},
		Delay:    []int{1, 1, 1},
		Disposal: []byte{gif.DisposalNone, gif.DisposalPrevious, gif.DisposalNone},
		Config:   image.Config{Width: 4, Height: 1},
	}

	frames := compositeGIF(g)
	require.Len(t, frames, 3)
	assert.Equal(t, []color.NRGBA{blue, red, red, red}, rowOf(t, frames[1]))
	assert.Equal(t, []color.NRGBA{red, red, red, green}, rowOf(t, frames[2]))
}

func TestDedupe(t *testing.T) {
	mk := func(x int) *bitmap.Bitmap {
		bm := bitmap.New(8, 2, 0, 0)
		bm.Set(x, 1)
		return bm
	}
	a, b, c := mk(0), mk(1), mk(2)
	frames := framesWithDurations(10, 20, 30, 40)

	unique, data := dedupe([]*bitmap.Bitmap{a, b, mk(0), c}, frames)
	require.Len(t, unique, 3)
	assert.Same(t, a, unique[0])
	assert.Same(t, b, unique[1])
	assert.Same(t, c, unique[2])
	assert.Equal(t, []manifest.FrameData{
		{Index: 0, Duration: 10},
		{Index: 1, Duration: 20},
		{Index: 0, Duration: 30},
		{Index: 2, Duration: 40},
	}, data)
}

func TestConvertFramesKeepsOrder(t *testing.T) {
	p := params.Default()
	p.Width, p.Height = 4, 4

	var frames []Frame
	for i := 0; i < 9; i++ {
		c := color.Color(color.Black)
		if i%2 == 1 {
			c = color.White
		}
		frames = append(frames, Frame{Image: solid(2, 2, c), Duration: 100})
	}

	bms := convertFrames(frames, p, 3)
	require.Len(t, bms, 9)
	for i, bm := range bms {
		assert.Equal(t, i%2 == 0, bm.Get(1, 1), "frame %d", i)
	}
}

func TestRunPictureAndAnimation(t *testing.T) {
	dir := t.TempDir()
	dolphin := filepath.Join(t.TempDir(), "dolphin")

	writePNG(t, filepath.Join(dir, "cat.png"), solid(16, 8, color.Black))
	writeGIF(t, filepath.Join(dir, "anim.gif"), 16, 8,
		[]color.Color{color.Black, color.Black, color.White},
		[]int{10, 10, 20})

	var log bytes.Buffer
	cfg := Config{
		Source:     dir,
		DolphinDir: dolphin,
		Params:     params.Default(),
		Preview:    true,
		Workers:    2,
		Verbose:    true,
		Log:        &log,
	}
	res, err := New(cfg).Run()
	require.NoError(t, err)
	assert.Zero(t, res.Failed)
	require.Len(t, res.Sources, 2)
	assert.Equal(t, 4, res.Frames())
	assert.Contains(t, log.String(), "[img2fbm] found 2 source(s)")

	data, err := os.ReadFile(filepath.Join(dir, "cat.bm"))
	require.NoError(t, err)
	assert.Len(t, data, bitmap.Size(128, 64))
	assert.Equal(t, bitmap.Header, data[0])
	assert.FileExists(t, filepath.Join(dir, "cat_preview.png"))

	animDir := filepath.Join(dolphin, "anim_128x64")
	assert.FileExists(t, filepath.Join(animDir, "frame_0.bm"))
	assert.FileExists(t, filepath.Join(animDir, "frame_1.bm"))
	assert.NoFileExists(t, filepath.Join(animDir, "frame_2.bm"))

	meta, err := manifest.ReadMeta(filepath.Join(animDir, "meta.txt"))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, meta.FramesOrder)
	assert.Equal(t, 2, meta.ActiveFrames)
	assert.Equal(t, 2, meta.PassiveFrames)
	assert.Equal(t, 10, meta.FrameRate)
	assert.Equal(t, 400, meta.Duration)
	assert.Equal(t, 64, meta.Height)

	entries, err := manifest.ReadManifest(filepath.Join(dolphin, "manifest.txt"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "anim_128x64", entries[0].Name)

	f, err := os.Open(filepath.Join(dir, "anim_preview.gif"))
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
	assert.Equal(t, image.Rect(0, 0, 128*DefaultPreviewScale, 64*DefaultPreviewScale), anim.Image[0].Bounds())

	// A second run appends, a replacing run starts over.
	_, err = New(cfg).Run()
	require.NoError(t, err)
	entries, err = manifest.ReadManifest(filepath.Join(dolphin, "manifest.txt"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	cfg.ReplaceManifest = true
	_, err = New(cfg).Run()
	require.NoError(t, err)
	entries, err = manifest.ReadManifest(filepath.Join(dolphin, "manifest.txt"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunAnimationWithoutDolphinDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "blink.gif")
	writeGIF(t, src, 8, 8, []color.Color{color.Black, color.White}, []int{5, 5})

	p := params.Default()
	p.Height = 32
	res, err := New(Config{Source: src, Params: p, Log: &bytes.Buffer{}}).Run()
	require.NoError(t, err)
	require.Len(t, res.Sources, 1)

	animDir := filepath.Join(dir, "blink_128x32")
	assert.FileExists(t, filepath.Join(animDir, "meta.txt"))
	assert.FileExists(t, filepath.Join(animDir, "frame_1.bm"))
	assert.NoFileExists(t, filepath.Join(dir, "manifest.txt"))
	assert.Equal(t, int64(2*bitmap.Size(128, 32)), res.Bytes())
}

func TestRunOnlyPreview(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cat.png")
	writePNG(t, src, solid(4, 4, color.White))

	_, err := New(Config{
		Source:       src,
		Params:       params.Default(),
		OnlyPreview:  true,
		PreviewScale: 1,
		Log:          &bytes.Buffer{},
	}).Run()
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "cat.bm"))

	f, err := os.Open(filepath.Join(dir, "cat_preview.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 64), img.Bounds())
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(broken, []byte("not a png"), 0o644))

	var log bytes.Buffer
	res, err := New(Config{Source: dir, Params: params.Default(), Log: &log}).Run()
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Failed)
	assert.Contains(t, log.String(), "[img2fbm] error:")

	bad := params.Default()
	bad.Height = 0
	_, err = New(Config{Source: dir, Params: bad, Log: &log}).Run()
	assert.ErrorIs(t, err, params.ErrInvalidValue)

	_, err = New(Config{Source: t.TempDir(), Params: params.Default(), Log: &log}).Run()
	assert.Error(t, err)
}

func TestRunCutEverything(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "one.png")
	writePNG(t, src, solid(2, 2, color.Black))

	res, err := New(Config{
		Source: src,
		Params: params.Default(),
		Cut:    params.FrameCut{Start: 1},
		Log:    &bytes.Buffer{},
	}).Run()
	require.Error(t, err)
	require.Len(t, res.Sources, 1)
	assert.ErrorIs(t, res.Sources[0].Err, ErrNoFrames)
	assert.NoFileExists(t, filepath.Join(dir, "one.bm"))
}

func TestRunCutOnlyAppliesToAnimations(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), solid(4, 4, color.Black))
	writeGIF(t, filepath.Join(dir, "b.gif"), 4, 4,
		[]color.Color{color.Black, color.White, color.Black}, []int{10, 10, 10})

	res, err := New(Config{
		Source: dir,
		Params: params.Default(),
		Cut:    params.FrameCut{Start: 1},
		Speed:  2,
		Log:    &bytes.Buffer{},
	}).Run()
	require.NoError(t, err)
	assert.Zero(t, res.Failed)
	require.Len(t, res.Sources, 2)

	assert.NoError(t, res.Sources[0].Err)
	assert.Equal(t, 1, res.Sources[0].Frames)
	assert.FileExists(t, filepath.Join(dir, "a.bm"))

	assert.NoError(t, res.Sources[1].Err)
	assert.Equal(t, 2, res.Sources[1].Frames)
	require.NotNil(t, res.Sources[1].Meta)
	assert.Equal(t, []int{0, 1}, res.Sources[1].Meta.FramesOrder)
	assert.Equal(t, 100, res.Sources[1].Meta.Duration)
}

func TestRunRejectsBadSpeed(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "blink.gif")
	writeGIF(t, src, 4, 4, []color.Color{color.Black, color.White}, []int{10, 10})

	for _, speed := range []float32{-1, float32(math.NaN()), float32(math.Inf(-1))} {
		_, err := New(Config{Source: src, Params: params.Default(), Speed: speed, Log: &bytes.Buffer{}}).Run()
		assert.ErrorIs(t, err, params.ErrInvalidValue, "speed %v", speed)
	}
	assert.NoFileExists(t, filepath.Join(dir, "blink_128x64", "meta.txt"))
}
