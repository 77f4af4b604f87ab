package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoro11031/safefs/internal/cli"
)

var (
	touchContent   string
	logNoTimestamp bool
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir DIR...",
	Short: "Create directories and their parents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.MakeDirs(ctx, args)
	},
}

var touchCmd = &cobra.Command{
	Use:   "touch FILE",
	Short: "Create a file",
	Long:  `Create FILE, and its parent directories, holding the text given with --content.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.Touch(ctx, args[0], touchContent)
	},
}

var logCmd = &cobra.Command{
	Use:   "log FILE MESSAGE...",
	Short: "Append a timestamped line to a log file",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.AppendLog(ctx, args[0], strings.Join(args[1:], " "), !logNoTimestamp)
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup FILE...",
	Short: "Copy files to FILE.backup.YYYYMMDD_HHMMSS",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.Backup(ctx, args)
	},
}

func init() {
	touchCmd.Flags().StringVarP(&touchContent, "content", "c", "", "Text to write into the file")
	addOverwriteFlag(touchCmd)
	logCmd.Flags().BoolVar(&logNoTimestamp, "no-timestamp", false, "Do not prefix the line with the time")

	rootCmd.AddCommand(mkdirCmd, touchCmd, logCmd, backupCmd)
}
