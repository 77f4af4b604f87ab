package main

import (
	"github.com/spf13/cobra"

	"github.com/zoro11031/safefs/internal/cli"
)

var (
	renameBase   bool
	transferInto bool
)

var renameCmd = &cobra.Command{
	Use:   "rename SRC DST",
	Short: "Rename a file or directory",
	Long: `Rename SRC to DST. Missing parent directories of DST are created.

With --name, DST is a new base name and SRC stays in its directory.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		if renameBase {
			return cli.RenameBase(ctx, args[0], args[1])
		}
		return cli.Transfer(ctx, cli.TransferRename, args[:1], args[1], false)
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy SRC... DST",
	Short: "Copy files or directories",
	Long: `Copy SRC to DST, recursing into directories. With several sources, or
with --into, DST is a directory that receives each source under its own name.
With --overwrite an existing destination directory is merged into.`,
	Aliases: []string{"cp"},
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.Transfer(ctx, cli.TransferCopy, args[:len(args)-1], args[len(args)-1], transferInto)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move SRC... DST",
	Short: "Move files or directories",
	Long: `Move SRC to DST. A rename is tried first; across filesystems the source
is copied and then removed. With several sources, or with --into, DST is a
directory that receives each source under its own name.`,
	Aliases: []string{"mv"},
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.Transfer(ctx, cli.TransferMove, args[:len(args)-1], args[len(args)-1], transferInto)
	},
}

func init() {
	renameCmd.Flags().BoolVarP(&renameBase, "name", "n", false, "Treat DST as a new base name")
	copyCmd.Flags().BoolVarP(&transferInto, "into", "t", false, "Treat DST as a target directory")
	moveCmd.Flags().BoolVarP(&transferInto, "into", "t", false, "Treat DST as a target directory")

	for _, cmd := range []*cobra.Command{renameCmd, copyCmd, moveCmd} {
		addOverwriteFlag(cmd)
		rootCmd.AddCommand(cmd)
	}
}
