package cmd

import (
	"github.com/mouse-blink/resub/internal/controller"
	m "github.com/mouse-blink/resub/internal/model"
	"github.com/spf13/cobra"
)

var listRegexFlag bool
var listExcludeFlags []string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list path find_pattern [file_patterns...]",
		Short: "List matching files and occurrence counts",
		Long: `List walks the tree exactly like a replace run would, but only counts
pattern occurrences per file. Nothing is written.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := m.ModeLiteral
			if listRegexFlag {
				mode = m.ModeRegex
			}

			cfg := m.RunConfig{
				Root:         m.Path(args[0]),
				Find:         args[1],
				Mode:         mode,
				FilePatterns: args[2:],
				Exclude:      listExcludeFlags,
			}

			ui := controller.NewSimpleUI(cmd.OutOrStdout(), false)

			_, err := newWorkflow(ui).List(cmd.Context(), cfg)

			return err
		},
	}

	cmd.Flags().BoolVarP(&listRegexFlag, "regex", "r", false, "treat find_pattern as a regular expression")
	cmd.Flags().StringArrayVarP(&listExcludeFlags, "exclude", "x", nil, "exclude paths matching regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
