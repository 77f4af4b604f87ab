package main

import (
	"github.com/spf13/cobra"

	"github.com/zoro11031/safefs/internal/cli"
)

var normalizeAbs bool

var normalizeCmd = &cobra.Command{
	Use:   "normalize PATH...",
	Short: "Print paths in canonical forward-slash form",
	Long: `Print each path with separators converted to /, repeated separators
collapsed, . and .. resolved and any trailing separator removed.
Nothing on disk is touched.`,
	Example: `  safefs normalize 'C:\foo\bar\'
  safefs normalize --abs ../notes`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.Normalize(ctx, args, normalizeAbs)
	},
}

func init() {
	normalizeCmd.Flags().BoolVarP(&normalizeAbs, "abs", "a", false, "Resolve relative paths against the working directory")
	rootCmd.AddCommand(normalizeCmd)
}
