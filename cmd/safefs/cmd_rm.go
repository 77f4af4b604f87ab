package main

import (
	"github.com/spf13/cobra"

	"github.com/zoro11031/safefs/internal/cli"
)

var (
	rmForce bool
	rmPrune bool
	rmKeep  bool
)

var rmCmd = &cobra.Command{
	Use:   "rm PATH...",
	Short: "Delete files and directories",
	Long: `Delete each PATH. Directories are only removed when they hold no files;
empty subdirectories are pruned along the way. Use --force to remove a
directory with everything in it. Filesystem roots and system directories
are always refused.

With --prune, only empty subdirectories are removed; add --keep-root to keep
PATH itself even when it ends up empty.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		if rmPrune {
			for _, dir := range args {
				if err := cli.Prune(ctx, dir, !rmKeep); err != nil {
					return err
				}
			}
			return nil
		}
		return cli.Remove(ctx, args, rmForce)
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Remove directories with their contents")
	rmCmd.Flags().BoolVar(&rmPrune, "prune", false, "Only remove empty directories")
	rmCmd.Flags().BoolVar(&rmKeep, "keep-root", false, "With --prune, keep PATH itself")
	rmCmd.MarkFlagsMutuallyExclusive("force", "prune")
	rootCmd.AddCommand(rmCmd)
}
