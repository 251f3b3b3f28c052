package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var flags timelineFlags

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the timeline interactively",
		Long: "Browse the timeline full-screen. The chart re-lays out when the terminal\n" +
			"is resized. ←/→ scroll by month, ↑/↓ scroll rows, t jumps to today,\n" +
			"? toggles the legend, q quits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("view needs an interactive terminal; use `gantry timeline` instead")
			}
			ctx := cmd.Context()
			src, err := flags.resolve(ctx, app)
			if err != nil {
				return err
			}

			m := newTimelineModel(ctx, src, app.Config, app.now, flags.legend)
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
