package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AnyUserName/img2fbm/internal/params"
	"github.com/AnyUserName/img2fbm/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	convParams       = params.Default()
	convPreview      bool
	convOnlyPreview  bool
	convPreviewScale int
	convSpeed        float32
	convCut          params.FrameCut
	convReplace      bool
	convWorkers      int
)

func runConvert(_ *cobra.Command, args []string) error {
	start := time.Now()

	absSource, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	var absDolphin string
	if len(args) > 1 {
		if absDolphin, err = filepath.Abs(args[1]); err != nil {
			return fmt.Errorf("resolve dolphin path: %w", err)
		}
	}
	if !(convSpeed > 0) {
		return fmt.Errorf("speed: %w: %g (must be > 0)", params.ErrInvalidValue, convSpeed)
	}
	if convPreviewScale < 1 {
		return fmt.Errorf("preview scale: %w: %d", params.ErrInvalidValue, convPreviewScale)
	}

	logVerbose("source:    %s", absSource)
	if absDolphin != "" {
		logVerbose("dolphin:   %s", absDolphin)
	}
	logVerbose("canvas:    %dx%d, %s, align %s, background %s",
		convParams.Width, convParams.Height, convParams.ScaleType, convParams.Alignment, convParams.Background)
	logVerbose("threshold: %s, inverse=%t", convParams.Threshold, convParams.Inverse)

	p := pipeline.New(pipeline.Config{
		Source:          absSource,
		DolphinDir:      absDolphin,
		Params:          convParams,
		Cut:             convCut,
		Speed:           convSpeed,
		Preview:         convPreview,
		OnlyPreview:     convOnlyPreview,
		PreviewScale:    convPreviewScale,
		ReplaceManifest: convReplace,
		Workers:         convWorkers,
		Verbose:         verbose,
	})

	res, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	printConvertReport(res, time.Since(start))
	return nil
}

func printConvertReport(res *pipeline.Result, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              img2fbm convert complete            ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	var pictures, animations int
	for _, s := range res.Sources {
		if s.Err != nil {
			continue
		}
		if s.Source.Kind == pipeline.KindAnimation {
			animations++
		} else {
			pictures++
		}
	}

	fmt.Printf("  Pictures:    %d\n", pictures)
	fmt.Printf("  Animations:  %d\n", animations)
	fmt.Printf("  Frames:      %d\n", res.Frames())
	fmt.Printf("  Output size: %s\n", formatBytes(res.Bytes()))
	if res.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", res.Failed)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()

	for _, s := range res.Sources {
		if s.Err != nil {
			fmt.Printf("    ✗ %-40s %v\n", truncKey(s.Source.Name, 40), s.Err)
			continue
		}
		if s.Meta != nil {
			fmt.Printf("    %-40s %3d frames → %3d files, %d fps\n",
				truncKey(s.Layout.AnimName, 40), s.Frames, s.Unique, s.Meta.FrameRate)
			continue
		}
		fmt.Printf("    %-40s %8s\n", truncKey(s.Source.Name, 40), formatBytes(s.Bytes))
	}
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
