package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/skilltools/internal/container"
	"github.com/pdiddy/skilltools/internal/convert"
	"github.com/pdiddy/skilltools/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <pdf_path> [output_dir]",
	Short: "Render PDF pages to PNG images",
	Long: `Convert renders each page of a PDF into <name>-<page>.png in the output
directory (default: the current directory), creating it if needed, and prints
the image paths in page order, one per line.

Rendering is done by pdftoppm from poppler-utils. The local backend runs it
from PATH; the container backend runs it from a poppler image with docker or
podman.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Int("dpi", types.DefaultDPI, "output resolution in dots per inch")
	convertCmd.Flags().String("backend", string(types.BackendLocal), "rasterizer backend: local or container")
	convertCmd.Flags().String("image", types.DefaultPopplerImage, "poppler image for the container backend")
	convertCmd.Flags().Duration("timeout", 0, "abort rendering after this long (0 means no limit)")

	_ = viper.BindPFlag("raster.dpi", convertCmd.Flags().Lookup("dpi"))
	_ = viper.BindPFlag("raster.backend", convertCmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("raster.image", convertCmd.Flags().Lookup("image"))
	_ = viper.BindPFlag("raster.timeout", convertCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	rc := toolsCfg.Raster
	outDir := "."
	if len(args) > 1 {
		outDir = args[1]
	}

	backend, err := makeBackend(rc)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if rc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.Timeout)
		defer cancel()
	}

	pages, err := convert.NewRasterizer(backend, logger).Convert(ctx, types.ConversionRequest{
		SourcePath: args[0],
		OutputDir:  outDir,
		DPI:        rc.DPI,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range pages {
		fmt.Fprintln(out, p)
	}
	return nil
}

// makeBackend is the backend factory used by convert; tests replace it.
var makeBackend = newBackend

// newBackend builds the rasterizer backend selected by rc.
func newBackend(rc types.RasterConfig) (convert.Backend, error) {
	switch rc.Backend {
	case types.BackendLocal:
		return convert.NewPdftoppmBackend(), nil
	case types.BackendContainer:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("runtime", rt.Name()).Str("image", rc.Image).Msg("using container backend")
		return convert.NewContainerBackend(rt, rc.Image)
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)", rc.Backend, types.BackendLocal, types.BackendContainer)
	}
}
