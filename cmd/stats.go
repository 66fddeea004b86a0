package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/img2fbm/internal/bitmap"
	"github.com/AnyUserName/img2fbm/internal/hasher"
	"github.com/AnyUserName/img2fbm/internal/manifest"
	"github.com/AnyUserName/img2fbm/internal/pipeline"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <animation_dir>",
	Short: "Display statistics for a converted animation",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// frameStat describes one frame_<i>.bm on disk.
type frameStat struct {
	file    string
	size    int
	density float64
	hash    string
	shown   int
}

func runStats(_ *cobra.Command, args []string) error {
	dir := args[0]

	m, err := manifest.ReadMeta(filepath.Join(dir, manifest.MetaFileName))
	if err != nil {
		return fmt.Errorf("read meta: %w", err)
	}

	frames, err := collectFrameStats(dir, m)
	if err != nil {
		return err
	}
	printStats(filepath.Base(dir), m, frames)
	return nil
}

func collectFrameStats(dir string, m *manifest.Meta) ([]frameStat, error) {
	if err := checkDimensions(m); err != nil {
		return nil, err
	}

	shown := map[int]int{}
	for _, idx := range m.FramesOrder {
		shown[idx]++
	}

	stats := make([]frameStat, m.FrameFiles())
	for i := range stats {
		file := pipeline.FrameFileName(i)
		f, err := os.Open(filepath.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("open frame: %w", err)
		}
		var buf bytes.Buffer
		hash, err := hasher.ContentHashReader(io.TeeReader(f, &buf), 8)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		data := buf.Bytes()

		bm, err := bitmap.Decode(data, uint8(m.Width), uint8(m.Height))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		stats[i] = frameStat{
			file:    file,
			size:    len(data),
			density: bm.Density(),
			hash:    hash,
			shown:   shown[i],
		}
	}
	return stats, nil
}

func printStats(name string, m *manifest.Meta, frames []frameStat) {
	fmt.Println()
	fmt.Printf("  Animation:        %s\n", name)
	fmt.Printf("  Meta version:     %d\n", m.Version)
	fmt.Printf("  Canvas:           %dx%d\n", m.Width, m.Height)
	fmt.Printf("  Frame files:      %d\n", len(frames))
	fmt.Printf("  Frames order:     %d (%d passive, %d active)\n",
		len(m.FramesOrder), m.PassiveFrames, m.ActiveFrames)
	fmt.Printf("  Frame rate:       %d fps\n", m.FrameRate)
	fmt.Printf("  Duration:         %s\n", (time.Duration(m.Duration) * time.Millisecond).String())
	fmt.Println()

	var total int64
	fmt.Println("  Frames:")
	for _, f := range frames {
		total += int64(f.size)
		fmt.Printf("    %-14s %6s  %5.1f%% set  shown %3dx  %s\n",
			f.file, formatBytes(int64(f.size)), f.density*100, f.shown, f.hash)
	}
	fmt.Println()
	fmt.Printf("  Total size:       %s\n", formatBytes(total))

	var warnings []string
	for _, f := range frames {
		if f.shown == 0 {
			warnings = append(warnings, fmt.Sprintf("%s is never shown", f.file))
		}
		if f.density == 0 || f.density == 1 {
			warnings = append(warnings, fmt.Sprintf("%s is a single color", f.file))
		}
	}
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
