package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/img2fbm/internal/bitmap"
	"github.com/AnyUserName/img2fbm/internal/manifest"
	"github.com/AnyUserName/img2fbm/internal/params"
	"github.com/AnyUserName/img2fbm/internal/pipeline"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dolphin_dir>",
	Short: "Validate a dolphin directory: manifest, meta files and frames",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	dir := args[0]

	entries, err := manifest.ReadManifest(filepath.Join(dir, manifest.ManifestFileName))
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	logVerbose("manifest lists %d animation(s)", len(entries))

	errors := validateDolphin(dir, entries)
	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d animations, all frames present\n", len(entries))
		return nil
	}

	fmt.Printf("  ✗ Dolphin directory has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateDolphin(dir string, entries []manifest.Entry) []string {
	var errs []string
	seen := map[string]bool{}
	for _, e := range entries {
		if seen[e.Name] {
			errs = append(errs, fmt.Sprintf("animation %q: listed twice", e.Name))
			continue
		}
		seen[e.Name] = true

		if e.MinButthurt > e.MaxButthurt || e.MinLevel > e.MaxLevel {
			errs = append(errs, fmt.Sprintf("animation %q: empty butthurt or level range", e.Name))
		}
		errs = append(errs, validateAnimation(filepath.Join(dir, e.Name), e.Name)...)
	}
	return errs
}

// checkDimensions rejects canvases the device cannot show.
func checkDimensions(m *manifest.Meta) error {
	if m.Width != int(params.TargetWidth) || m.Height < 1 || m.Height > int(params.MaxHeight) {
		return fmt.Errorf("invalid dimensions %dx%d", m.Width, m.Height)
	}
	return nil
}

func validateAnimation(animDir, name string) []string {
	m, err := manifest.ReadMeta(filepath.Join(animDir, manifest.MetaFileName))
	if err != nil {
		return []string{fmt.Sprintf("animation %q: %v", name, err)}
	}

	var errs []string
	if m.Version != manifest.SupportedVersion {
		errs = append(errs, fmt.Sprintf("animation %q: unsupported version %d", name, m.Version))
	}
	if err := checkDimensions(m); err != nil {
		errs = append(errs, fmt.Sprintf("animation %q: %v", name, err))
		return errs
	}
	if len(m.FramesOrder) == 0 {
		errs = append(errs, fmt.Sprintf("animation %q: empty frames order", name))
	}
	if m.PassiveFrames+m.ActiveFrames != len(m.FramesOrder) {
		errs = append(errs, fmt.Sprintf("animation %q: passive(%d) + active(%d) != order length %d",
			name, m.PassiveFrames, m.ActiveFrames, len(m.FramesOrder)))
	}
	if m.FrameRate <= 0 {
		errs = append(errs, fmt.Sprintf("animation %q: invalid frame rate %d", name, m.FrameRate))
	}

	width, height := uint8(m.Width), uint8(m.Height)
	for i := 0; i < m.FrameFiles(); i++ {
		file := pipeline.FrameFileName(i)
		data, err := os.ReadFile(filepath.Join(animDir, file))
		if err != nil {
			errs = append(errs, fmt.Sprintf("animation %q: frame not found: %s", name, file))
			continue
		}
		if len(data) != bitmap.Size(width, height) {
			errs = append(errs, fmt.Sprintf("animation %q: %s: size mismatch: want %d, got %d",
				name, file, bitmap.Size(width, height), len(data)))
			continue
		}
		if _, err := bitmap.Decode(data, width, height); err != nil {
			errs = append(errs, fmt.Sprintf("animation %q: %s: %v", name, file, err))
		}
	}
	return errs
}
