package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AnyUserName/img2fbm/internal/manifest"
)

// ErrUnsupportedFormat is returned for files that are not a known image type.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Kind tells still pictures from animations.
type Kind int

const (
	KindPicture Kind = iota
	KindAnimation
)

func (k Kind) String() string {
	if k == KindAnimation {
		return "animation"
	}
	return "picture"
}

// Source represents an input image file.
type Source struct {
	// Path is the path to the file on disk.
	Path string
	// Dir is the directory holding the file.
	Dir string
	// Name is the file name without extension.
	Name string
	// Format is the lower-case extension without dot (png, jpeg, gif, ...).
	Format string
	Kind   Kind
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]Kind{
	".png":  KindPicture,
	".jpg":  KindPicture,
	".jpeg": KindPicture,
	".webp": KindPicture,
	".bmp":  KindPicture,
	".tiff": KindPicture,
	".tif":  KindPicture,
	".gif":  KindAnimation,
}

// NewSource classifies a single input file.
func NewSource(path string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	kind, ok := imageExtensions[ext]
	if !ok {
		return Source{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	format := strings.TrimPrefix(ext, ".")
	switch format {
	case "jpg":
		format = "jpeg"
	case "tif":
		format = "tiff"
	}

	base := filepath.Base(path)
	return Source{
		Path:   path,
		Dir:    filepath.Dir(path),
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		Format: format,
		Kind:   kind,
	}, nil
}

// ScanSources returns the single source at path or, for a directory,
// every image below it. Hidden directories and generated previews are
// skipped.
func ScanSources(path string) ([]Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		src, err := NewSource(path)
		if err != nil {
			return nil, err
		}
		return []Source{src}, nil
	}

	var sources []Source
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && p != path {
				return filepath.SkipDir
			}
			return nil
		}
		src, err := NewSource(p)
		if err != nil {
			return nil
		}
		if strings.HasSuffix(src.Name, previewSuffix) {
			return nil
		}
		sources = append(sources, src)
		return nil
	})
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, err
}

const (
	previewSuffix = "_preview"
	bmExt         = ".bm"
)

// Layout lists every file derived from a source.
type Layout struct {
	// PictureBM is the .bm written next to a still picture.
	PictureBM string
	// PreviewStem is the preview path without extension.
	PreviewStem string

	// DolphinDir holds the animation directories and manifest.txt.
	DolphinDir string
	// AnimName is <name>_<width>x<height>.
	AnimName     string
	AnimDir      string
	MetaPath     string
	ManifestPath string
	// WithManifest is set when the dolphin directory was given explicitly.
	WithManifest bool
}

// NewLayout derives the output paths of src. An empty dolphinDir places
// the animation next to the source and leaves manifest.txt alone.
func NewLayout(src Source, dolphinDir string, width, height uint8) Layout {
	stem := filepath.Join(src.Dir, src.Name)
	l := Layout{
		PictureBM:    stem + bmExt,
		PreviewStem:  stem + previewSuffix,
		DolphinDir:   dolphinDir,
		AnimName:     fmt.Sprintf("%s_%dx%d", src.Name, width, height),
		WithManifest: dolphinDir != "",
	}
	if l.DolphinDir == "" {
		l.DolphinDir = src.Dir
	}
	l.AnimDir = filepath.Join(l.DolphinDir, l.AnimName)
	l.MetaPath = filepath.Join(l.AnimDir, manifest.MetaFileName)
	l.ManifestPath = filepath.Join(l.DolphinDir, manifest.ManifestFileName)
	return l
}

// PreviewPath returns the preview file for an encoder extension.
func (l Layout) PreviewPath(ext string) string {
	return l.PreviewStem + "." + ext
}

// FramePath returns the path of frame_<i>.bm.
func (l Layout) FramePath(i int) string {
	return filepath.Join(l.AnimDir, FrameFileName(i))
}

// FrameFileName is the device's name for frame i.
func FrameFileName(i int) string {
	return fmt.Sprintf("frame_%d%s", i, bmExt)
}
