package cmd

import (
	"fmt"
	"image/color"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/raster"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/scheme"
)

var (
	exportOutput  string
	exportElement string
	exportWidth   int
	exportHeight  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export schemes to other formats",
}

var exportPNGCmd = &cobra.Command{
	Use:   "png <file>",
	Short: "Render a scheme, or one element of it, to PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportPNG,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportPNGCmd)

	exportPNGCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: <file>.png)")
	exportPNGCmd.Flags().StringVarP(&exportElement, "element", "e", "", "render only the named element")
	exportPNGCmd.Flags().IntVar(&exportWidth, "width", 0, "image width (default from config)")
	exportPNGCmd.Flags().IntVar(&exportHeight, "height", 0, "image height (default from config)")
}

func exportOptions() raster.Options {
	opts := raster.DefaultOptions()
	opts.Width, opts.Height = cfg.Export.Width, cfg.Export.Height
	if exportWidth > 0 {
		opts.Width = exportWidth
	}
	if exportHeight > 0 {
		opts.Height = exportHeight
	}
	if cfg.Theme == "dark" {
		opts.Background = color.RGBA{30, 30, 30, 255}
		opts.Ink = color.RGBA{255, 100, 100, 255}
		opts.Wire = color.RGBA{0, 255, 0, 255}
	}
	return opts
}

func runExportPNG(cmd *cobra.Command, args []string) error {
	t, err := scheme.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing scheme: %w", err)
	}

	opts := exportOptions()
	out := exportOutput
	if out == "" {
		out = args[0] + ".png"
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if exportElement == "" {
		if err := raster.WritePNG(f, t, electron.NodeID{}, opts); err != nil {
			return err
		}
	} else {
		id, ok := t.Find(func(el *electron.Element) bool { return el.Name == exportElement })
		if !ok {
			return fmt.Errorf("%s: no element named %q", args[0], exportElement)
		}
		el, _ := t.Get(id)
		img, err := raster.RenderElement(el, opts)
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			return err
		}
	}

	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", out, opts.Width, opts.Height)
	return nil
}
