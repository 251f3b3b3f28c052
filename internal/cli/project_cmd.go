package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/importer"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectImportCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, shortID, status, location string
	var budget float64
	var start, end dateFlag

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				ShortID:  strings.ToUpper(shortID),
				Name:     name,
				Location: location,
				Budget:   budget,
				Status:   domain.ParseStatus(status),
			}
			if status == "" {
				p.Status = domain.StatusPlanned
			}
			p.StartDate, p.EndDate = start.t, end.t

			if name == "" && app.interactive() {
				if err := fillProjectFromForm(p); err != nil {
					return err
				}
			}

			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. TWR01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name (prompted for when omitted in a terminal)")
	cmd.Flags().Var(&start, "start", "Start date")
	cmd.Flags().Var(&end, "end", "End date (inclusive)")
	cmd.Flags().StringVar(&status, "status", "", "Status: planned, active, on hold, delayed, completed, cancelled")
	cmd.Flags().StringVar(&location, "location", "", "Site or location")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget")

	return cmd
}

func fillProjectFromForm(p *domain.Project) error {
	v := projectFormValues{ShortID: p.ShortID, Status: string(p.Status), Location: p.Location}
	if !p.StartDate.IsZero() {
		v.Start = p.StartDate.Format(domain.DateLayout)
	}
	if !p.EndDate.IsZero() {
		v.End = p.EndDate.Format(domain.DateLayout)
	}
	if err := projectForm(&v).Run(); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(v.Name)
	p.ShortID = strings.ToUpper(strings.TrimSpace(v.ShortID))
	p.Location = strings.TrimSpace(v.Location)
	p.Status = domain.ParseStatus(v.Status)
	// The form validated both dates already.
	p.StartDate, _ = time.Parse(domain.DateLayout, strings.TrimSpace(v.Start))
	p.EndDate, _ = time.Parse(domain.DateLayout, strings.TrimSpace(v.End))
	return nil
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PROJECT",
		Short: "Show project details and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}

			data := formatter.ProjectInspectData{
				Project: p,
				Tasks:   tasks,
				Lanes:   taskLanes(tasks, app.Config.Timeline.SortTasksByStart),
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectInspect(data))
			return nil
		},
	}
}

// taskLanes runs the lane stacker over the tasks so inspect can show which
// timeline row each task lands in.
func taskLanes(tasks []*domain.Task, sortByStart bool) map[string]int {
	items := make([]timeline.LaneItem, len(tasks))
	for i, t := range tasks {
		items[i] = timeline.LaneItem{
			ID:       t.ID,
			Interval: timeline.NewInterval(t.StartDate, t.EndDate.AddDate(0, 0, 1).Add(-time.Nanosecond)),
		}
	}
	stack := timeline.StackLanes
	if sortByStart {
		stack = timeline.StackLanesSorted
	}
	return stack(items)
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, shortID, status, location string
	var budget float64
	var start, end dateFlag

	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("id") {
				p.ShortID = strings.ToUpper(shortID)
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.ParseStatus(status)
			}
			if cmd.Flags().Changed("location") {
				p.Location = location
			}
			if cmd.Flags().Changed("budget") {
				p.Budget = budget
			}
			if start.set {
				p.StartDate = start.t
			}
			if end.set {
				p.EndDate = end.t
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().Var(&start, "start", "Start date")
	cmd.Flags().Var(&end, "end", "End date (inclusive)")
	cmd.Flags().StringVar(&status, "status", "", "Status")
	cmd.Flags().StringVar(&location, "location", "", "Site or location")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Delete a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %s without --yes", p.DisplayID())
				}
				confirmed := false
				title := fmt.Sprintf("Delete %s (%s) and all of its tasks?", p.Name, p.DisplayID())
				if err := confirmForm(title, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newProjectImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project and its tasks from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				res *service.ImportResult
				err error
			)
			if dryRun {
				res, err = previewImport(ctx, app, args[0])
			} else {
				res, err = app.Import.ImportProject(ctx, args[0])
			}
			if err != nil {
				return err
			}

			out := formatter.FormatImportResult(res)
			if dryRun {
				out += formatter.Dim("  dry run: nothing was saved") + "\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without saving it")
	return cmd
}

func previewImport(ctx context.Context, app *App, path string) (*service.ImportResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, err
	}
	_, res, err := service.NewPreviewTimeline(ctx, schema, app.Observers...)
	return res, err
}
