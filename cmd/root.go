// Package cmd provides the root command and CLI setup for resub.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mouse-blink/resub/internal/adapter"
	"github.com/mouse-blink/resub/internal/controller"
	"github.com/mouse-blink/resub/internal/domain"
	m "github.com/mouse-blink/resub/internal/model"
	"github.com/spf13/cobra"
)

var fsAdapter adapter.FSAdapter = adapter.NewLocalFSAdapter()

// newWorkflow builds the workflow for a single invocation. It is a variable
// so tests can substitute a fake.
var newWorkflow = func(ui controller.UI) domain.Workflow {
	return domain.NewWorkflow(fsAdapter, ui)
}

var regexFlag bool
var quietFlag bool
var dryRunFlag bool
var excludeFlags []string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resub [flags] path find_pattern replace_pattern [file_patterns...]",
		Short: "Recursive in-place find and replace",
		Long: `Resub walks a directory tree and rewrites matching text files in place,
replacing every occurrence of the find pattern with the replacement.

File patterns are unix shell-style globs matched against filenames only:
  resub ./src 'foo' 'bar' '*.php' '*.html'

With --regex the find pattern is a regular expression and the replacement
may reference capture groups:
  resub -r ./logs '(\d+)-(\d+)-(\d+)' '$3/$2/$1' '*.log'`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// A separate cancel lets the TUI stop the run from a keypress.
			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			mode := m.ModeLiteral
			if regexFlag {
				mode = m.ModeRegex
			}

			cfg := m.RunConfig{
				Root:         m.Path(args[0]),
				Find:         args[1],
				Replace:      args[2],
				Mode:         mode,
				FilePatterns: args[3:],
				Exclude:      excludeFlags,
				DryRun:       dryRunFlag,
				Quiet:        quietFlag,
			}

			ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()), quietFlag, cancel)

			_, err := newWorkflow(ui).Run(runCtx, cfg)

			return err
		},
	}

	cmd.Flags().BoolVarP(&regexFlag, "regex", "r", false, "treat find_pattern as a regular expression")
	cmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress progress output")
	cmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "count changes without writing any file")
	cmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude paths matching regex (can be repeated)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
