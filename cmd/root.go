package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/AnyUserName/img2fbm/internal/params"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "img2fbm <source> [dolphin]",
	Short: "Convert images to Flipper Zero bitmaps and dolphin animations",
	Long: `img2fbm turns pictures into 1-bit .bm files for the Flipper Zero screen
and GIFs into dolphin animations (frame_<i>.bm + meta.txt).

<source> is an image file or a directory of images. When [dolphin] is
given, animations are written there and registered in manifest.txt;
otherwise they land next to the source.`,
	Version: version,
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runConvert,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"img2fbm %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))

	f := rootCmd.Flags()
	f.Uint8VarP(&convParams.Height, "height", "H", params.MaxHeight, "result image height (1-64)")
	f.Var(&convParams.ScaleType, "st", "scale type: "+params.ScaleTypeUsage())
	f.VarP(&convParams.Alignment, "alignment", "a", "image alignment: "+params.AlignmentUsage())
	f.VarP(&convParams.Background, "background", "b", "background handling: "+params.BackgroundUsage())
	f.VarP(&convParams.Threshold, "threshold", "t", "dark:light luminance threshold, in percent")
	f.BoolVarP(&convParams.Inverse, "inverse", "i", false, "invert pixels")
	f.BoolVarP(&convPreview, "preview", "p", false, "also write a preview image")
	f.BoolVar(&convOnlyPreview, "op", false, "write only the preview, no device files")
	f.IntVar(&convPreviewScale, "ps", 3, "preview scale factor")
	f.Float32VarP(&convSpeed, "speed", "s", 1, "animation speed multiplier (> 0)")
	f.VarP(&convCut, "cut", "c", "drop start:end frames of an animation")
	f.BoolVarP(&convReplace, "replace-manifest", "r", false, "rewrite manifest.txt instead of appending")
	f.IntVarP(&convWorkers, "workers", "w", 0, "parallel frame workers (0 = NumCPU)")
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[img2fbm] "+format+"\n", args...)
	}
}
