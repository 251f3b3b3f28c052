package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/importer"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// minChartColumns keeps the chart usable in very narrow terminals.
const minChartColumns = 10

// timelineFlags are shared by `timeline`, `export` and `view`.
type timelineFlags struct {
	projects []string
	from, to monthFlag
	file     string
	legend   bool
}

func (f *timelineFlags) register(fs *pflag.FlagSet) {
	fs.StringSliceVar(&f.projects, "project", nil, "Limit to these projects (short ID or ID, repeatable)")
	fs.Var(&f.from, "from", "First month to show (default: derived from the data)")
	fs.Var(&f.to, "to", "Last month to show (default: derived from the data)")
	fs.StringVar(&f.file, "file", "", "Preview a JSON/YAML import file instead of the database")
	fs.BoolVar(&f.legend, "legend", false, "Show the status legend")
}

// timelineSource is a resolved request minus the container width, which the
// caller picks per render.
type timelineSource struct {
	svc     service.TimelineService
	request service.TimelineRequest
}

func (s timelineSource) build(ctx context.Context, containerPx float64) (*timeline.Layout, error) {
	req := s.request
	req.ContainerWidthPx = containerPx
	return s.svc.Build(ctx, req)
}

// resolve turns the flags into a timeline source. With --file the plan is
// loaded into a throwaway in-memory store and --project is ignored.
func (f *timelineFlags) resolve(ctx context.Context, app *App) (timelineSource, error) {
	window, err := windowFromFlags(f.from, f.to)
	if err != nil {
		return timelineSource{}, err
	}
	src := timelineSource{
		svc: app.Timeline,
		request: service.TimelineRequest{
			Window:  window,
			Options: app.Config.TimelineOptions(),
		},
	}

	if f.file != "" {
		schema, err := importer.LoadImportSchema(f.file)
		if err != nil {
			return timelineSource{}, err
		}
		svc, _, err := service.NewPreviewTimeline(ctx, schema, app.Observers...)
		if err != nil {
			return timelineSource{}, err
		}
		src.svc = svc
		return src, nil
	}

	src.request.ProjectIDs, err = resolveProjectIDs(ctx, app, f.projects)
	if err != nil {
		return timelineSource{}, err
	}
	return src, nil
}

func newTimelineCmd(app *App) *cobra.Command {
	var flags timelineFlags
	var width int

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the Gantt timeline",
		Long: "Print projects and their tasks as a Gantt chart sized to the terminal.\n" +
			"Tasks that overlap are stacked into lanes under their project.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := flags.resolve(ctx, app)
			if err != nil {
				return err
			}

			total := width
			if total <= 0 {
				total = app.columns()
			}
			label := app.Config.Render.LabelColumns
			cell := app.Config.Render.CellWidthPx
			chartCols := max(total-label, minChartColumns)

			layout, err := src.build(ctx, formatter.ContainerWidthFor(chartCols, cell))
			if errors.Is(err, timeline.ErrNoData) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimelineEmpty())
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(layout, formatter.TimelineOptions{
				CellWidthPx: cell,
				LabelWidth:  label,
				Today:       app.now(),
				ViewCols:    chartCols,
				Legend:      flags.legend,
			}))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&width, "width", 0, "Total output width in columns (default: terminal width)")

	return cmd
}
