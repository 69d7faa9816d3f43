package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/riordanpawley/toastq/internal/services/script"
	"github.com/riordanpawley/toastq/internal/services/toasts"
	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	var (
		tui      bool
		simulate bool
	)

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Play a scripted sequence of toasts",
		Long: `Play a YAML or JSON script of toasts. Each step looks like

  - after: 500ms
    message: Build failed
    level: error
    duration: 5s

Without --tui every queue change is printed as a line and the command exits
once the last toast has expired. --simulate runs on a virtual clock and
finishes immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui && simulate {
				return fmt.Errorf("--tui and --simulate cannot be combined")
			}

			s, err := script.Load(args[0])
			if err != nil {
				return err
			}

			dir, err := projectDir(cmd)
			if err != nil {
				return err
			}

			if simulate {
				sched := toasts.NewManualScheduler(time.Now())
				deps, err := NewDependencies(dir, toasts.WithScheduler(sched))
				if err != nil {
					return err
				}
				defer deps.Close()
				return replaySimulated(cmd.OutOrStdout(), deps, sched, s)
			}

			deps, err := NewDependencies(dir)
			if err != nil {
				return err
			}
			defer deps.Close()

			if tui {
				return runTUI(cmd.Context(), deps, s, false)
			}
			return replayHeadless(cmd.Context(), cmd.OutOrStdout(), deps, s)
		},
	}

	cmd.Flags().BoolVar(&tui, "tui", false, "Play the script inside the terminal UI")
	cmd.Flags().BoolVar(&simulate, "simulate", false, "Use a virtual clock instead of waiting in real time")

	return cmd
}

// printEvents writes every queue event to out until the returned function is
// called. Listeners run one at a time, so out needs no locking.
func printEvents(out io.Writer, q *toasts.Queue, onDrained func()) func() {
	return q.Subscribe(func(ev toasts.Event) {
		fmt.Fprintln(out, ev.String())
		if len(ev.Snapshot) == 0 && onDrained != nil {
			onDrained()
		}
	})
}

func replayHeadless(ctx context.Context, out io.Writer, deps *Dependencies, s *script.Script) error {
	drained := make(chan struct{}, 1)
	unsubscribe := printEvents(out, deps.Queue, func() {
		select {
		case drained <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	deps.Logger.Info("replay started", "steps", len(s.Steps), "length", s.Total())
	played, err := script.NewPlayer(s, deps.Logger).Run(ctx, deps.Queue)
	if err != nil {
		return fmt.Errorf("replay stopped after %d steps: %w", played, err)
	}

	for deps.Queue.Len() > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("replay interrupted: %w", ctx.Err())
		case <-drained:
		}
	}

	deps.Logger.Info("replay finished", "steps", played)
	return nil
}

func replaySimulated(out io.Writer, deps *Dependencies, sched *toasts.ManualScheduler, s *script.Script) error {
	unsubscribe := printEvents(out, deps.Queue, nil)
	defer unsubscribe()

	deps.Logger.Info("simulated replay started", "steps", len(s.Steps), "length", s.Total())
	for _, step := range s.Steps {
		sched.Advance(step.After)
		script.Play(deps.Queue, step)
	}
	elapsed := sched.Flush()

	deps.Logger.Info("simulated replay finished", "steps", len(s.Steps), "virtual_time", elapsed)
	return nil
}
