// Package cli implements the toastq command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "toastq",
		Short:         "Transient toast notifications for the terminal",
		Long:          "toastq shows short-lived success, error and warning toasts that disappear on their own. Run it interactively or replay a scripted sequence.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("path", ".", "Project directory to load .toastq.json or .toastq.yaml from")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newReplayCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// projectDir resolves the --path flag
func projectDir(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString("path")
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}
