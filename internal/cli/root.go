package cli

import (
	"time"

	"github.com/alexanderramin/gantry/internal/config"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Tasks    service.TaskService
	Import   service.ImportService
	Timeline service.TimelineService
	Config   config.Config

	// Observers are handed to throwaway services built for --file previews.
	Observers []service.UseCaseObserver

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// interactive view are only offered when it returns true.
	IsInteractive func() bool
	// TerminalWidth returns the current terminal width in columns, or 0 when
	// it cannot be determined.
	TerminalWidth func() int
	// Now is the clock used for the today marker.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// columns returns the terminal width, falling back to the configured default.
func (a *App) columns() int {
	if a.TerminalWidth != nil {
		if w := a.TerminalWidth(); w > 0 {
			return w
		}
	}
	if a.Config.Render.DefaultColumns > 0 {
		return a.Config.Render.DefaultColumns
	}
	return 120
}

// NewRootCmd creates the top-level "gantry" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gantry",
		Short:         "Plan projects and draw them as a Gantt timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newTimelineCmd(app),
		newExportCmd(app),
		newViewCmd(app),
		newConfigCmd(app),
	)

	return root
}
