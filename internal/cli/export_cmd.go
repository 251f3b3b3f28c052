package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/export"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/spf13/cobra"
)

const defaultExportWidthPx = 1200

// exportFormat picks the output format from --format, falling back to the
// --out extension and finally to SVG.
func exportFormat(format, out string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(out)) {
		case ".pdf":
			format = "pdf"
		default:
			format = "svg"
		}
	}
	format = strings.ToLower(format)
	if format != "svg" && format != "pdf" {
		return "", fmt.Errorf("unknown export format %q (use svg or pdf)", format)
	}
	return format, nil
}

func newExportCmd(app *App) *cobra.Command {
	var flags timelineFlags
	var format, out, title string
	var widthPx float64

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timeline as SVG or PDF",
		Long: "Export the timeline as SVG or PDF. SVG goes to stdout unless --out\n" +
			"is given; PDF always needs --out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := exportFormat(format, out)
			if err != nil {
				return err
			}
			if f == "pdf" && out == "" {
				return fmt.Errorf("pdf export needs --out")
			}

			src, err := flags.resolve(ctx, app)
			if err != nil {
				return err
			}

			var stop func()
			if app.interactive() && out != "" {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Rendering timeline...")
			}
			layout, err := src.build(ctx, widthPx)
			if stop != nil {
				stop()
			}
			if errors.Is(err, timeline.ErrNoData) {
				return fmt.Errorf("nothing to export: no projects with dates")
			}
			if err != nil {
				return err
			}

			switch f {
			case "pdf":
				opts := export.DefaultPDFOptions()
				opts.Title, opts.Today, opts.Legend = title, app.now(), flags.legend
				if err := export.WritePDF(out, layout, opts); err != nil {
					return err
				}
			default:
				opts := export.DefaultSVGOptions()
				opts.Title, opts.Today, opts.Legend = title, app.now(), flags.legend
				if out == "" {
					return export.WriteSVG(cmd.OutOrStdout(), layout, opts)
				}
				if err := writeSVGFile(out, layout, opts); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s Wrote %s (%d projects, %d tasks)\n",
				formatter.StyleGreen.Render("✔"), out, len(layout.Projects), layout.TaskCount())
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "", "svg or pdf (default: from --out extension, else svg)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	cmd.Flags().StringVar(&title, "title", "", "Title printed above the chart")
	cmd.Flags().Float64Var(&widthPx, "width", defaultExportWidthPx, "Chart width in pixels")

	return cmd
}

func writeSVGFile(path string, l *timeline.Layout, opts export.SVGOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating svg: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing svg: %w", cerr)
		}
	}()
	return export.WriteSVG(f, l, opts)
}
