package main

import (
	"github.com/spf13/cobra"

	"github.com/zoro11031/safefs/internal/cli"
	"github.com/zoro11031/safefs/pkg/safefs"
)

var (
	lsFiles bool
	lsDirs  bool
)

var lsCmd = &cobra.Command{
	Use:   "ls [DIR]",
	Short: "List a directory",
	Long:  `List the entries of DIR (default: the working directory) as full canonical paths, sorted by name.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		kinds := safefs.All
		switch {
		case lsFiles && !lsDirs:
			kinds = safefs.Files
		case lsDirs && !lsFiles:
			kinds = safefs.Dirs
		}
		return cli.List(ctx, dir, kinds)
	},
}

func init() {
	lsCmd.Flags().BoolVarP(&lsFiles, "files", "f", false, "Only list files")
	lsCmd.Flags().BoolVarP(&lsDirs, "dirs", "d", false, "Only list directories")
	rootCmd.AddCommand(lsCmd)
}
