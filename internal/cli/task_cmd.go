package cli

import (
	"fmt"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the tasks of a project",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskProgressCmd(app),
		newTaskUpdateCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var name, status, assignee, description string
	var progress int
	var critical bool
	var start, end dateFlag

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			t := &domain.Task{
				ProjectID:    p.ID,
				Name:         name,
				StartDate:    start.t,
				EndDate:      end.t,
				Progress:     progress,
				CriticalPath: critical,
				Assignee:     assignee,
				Description:  description,
			}
			if status != "" {
				t.Status = domain.ParseStatus(status)
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added task %q to %s (%s)\n",
				t.Name, p.DisplayID(), formatter.DateRange(t.StartDate, t.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().Var(&start, "start", "Start date")
	cmd.Flags().Var(&end, "end", "End date (inclusive)")
	cmd.Flags().StringVar(&status, "status", "", "Status (default planned)")
	cmd.Flags().IntVar(&progress, "progress", 0, "Percent complete, 0-100")
	cmd.Flags().BoolVar(&critical, "critical", false, "Mark the task as on the critical path")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Who is doing the work")
	cmd.Flags().StringVar(&description, "description", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List the tasks of a project",
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

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(p, tasks))
			return nil
		},
	}
}

func newTaskProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress TASK PERCENT",
		Short: "Record progress on a task",
		Long: "Record progress on a task. TASK is PROJECT/N (the row number from\n" +
			"`task list`) or a task ID. Reaching 100% completes the task.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			pct, err := parsePercent(args[1])
			if err != nil {
				return err
			}

			updated, err := app.Tasks.SetProgress(ctx, t.ID, pct)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %s\n",
				updated.Name,
				formatter.RenderCompactBar(float64(updated.Progress)/100, 10, false),
				formatter.StatusPill(updated.Status))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var name, status, assignee, description string
	var critical bool
	var start, end dateFlag

	cmd := &cobra.Command{
		Use:   "update TASK",
		Short: "Change a task's name, dates or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				t.Name = name
			}
			if flags.Changed("status") {
				t.Status = domain.ParseStatus(status)
			}
			if flags.Changed("critical") {
				t.CriticalPath = critical
			}
			if flags.Changed("assignee") {
				t.Assignee = assignee
			}
			if flags.Changed("description") {
				t.Description = description
			}
			if start.set {
				t.StartDate = start.t
			}
			if end.set {
				t.EndDate = end.t
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %q\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().Var(&start, "start", "Start date")
	cmd.Flags().Var(&end, "end", "End date (inclusive)")
	cmd.Flags().StringVar(&status, "status", "", "Status")
	cmd.Flags().BoolVar(&critical, "critical", false, "Critical path flag")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Who is doing the work")
	cmd.Flags().StringVar(&description, "description", "", "Free-form notes")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TASK",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %q\n", t.Name)
			return nil
		},
	}
}
