package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/toastq/internal/app"
	"github.com/riordanpawley/toastq/internal/config"
	"github.com/riordanpawley/toastq/internal/services/script"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive toast board",
		Long:  "Open the terminal UI. Press s, e or w to show a toast, i to write your own, d to dismiss the oldest and ? for help.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(cmd)
			if err != nil {
				return err
			}

			deps, err := NewDependencies(dir)
			if err != nil {
				return err
			}
			defer deps.Close()

			return runTUI(cmd.Context(), deps, nil, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", true, "Reload the config file when it changes")

	return cmd
}

// runTUI runs the Bubble Tea program until the user quits. When s is set the
// script plays inside the UI.
func runTUI(ctx context.Context, deps *Dependencies, s *script.Script, watch bool) error {
	model := app.New(deps.Config, deps.Queue, deps.Logger).WithScript(s)
	defer model.Close()

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if watch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		watcher := config.NewWatcher(deps.Dir, deps.Logger, func(cfg *config.Config) {
			program.Send(app.ConfigReloadedMsg{Config: cfg})
		})
		go func() {
			if err := watcher.Run(watchCtx); err != nil {
				deps.Logger.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	deps.Logger.Info("tui started", "dir", deps.Dir, "script", s != nil)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	return nil
}
