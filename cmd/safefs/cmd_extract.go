package main

import (
	"github.com/spf13/cobra"

	"github.com/zoro11031/safefs/internal/cli"
)

var (
	extractRemove bool
	extractAll    bool
	extractCheck  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract ARCHIVE...",
	Short: "Unpack zip, tar (plain or compressed), 7z and rar archives",
	Long: `Unpack each ARCHIVE into the directory that holds it. Entries that would
land outside that directory are refused.

With --all, each argument is a directory: every archive in it is unpacked and
removed, repeating while unpacking produces new archives. With --check,
archives are only verified and corrupt ones are deleted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		switch {
		case extractCheck:
			return cli.CheckArchives(ctx, args)
		case extractAll:
			for _, dir := range args {
				if err := cli.ExtractAll(ctx, dir); err != nil {
					return err
				}
			}
			return nil
		default:
			return cli.Extract(ctx, args, extractRemove)
		}
	},
}

func init() {
	extractCmd.Flags().BoolVarP(&extractRemove, "remove", "r", false, "Delete each archive after unpacking it")
	extractCmd.Flags().BoolVarP(&extractAll, "all", "a", false, "Unpack every archive in the given directories")
	extractCmd.Flags().BoolVar(&extractCheck, "check", false, "Only verify archives, deleting corrupt ones")
	extractCmd.MarkFlagsMutuallyExclusive("all", "check")
	rootCmd.AddCommand(extractCmd)
}
