package main

import (
	"github.com/spf13/cobra"

	"github.com/zoro11031/safefs/internal/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change saved defaults",
	Long: `Show or change the defaults stored in the config file.

Keys:
  OVERWRITE  replace existing destinations without asking (default false)
  CONFIRM    ask before replacing when OVERWRITE is off (default true)
  LOG_LEVEL  trace, debug, info, warning or error (default warning)

Each key can also be set through the environment, e.g. SAFEFS_LOG_LEVEL=debug.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting with its effective value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.ShowConfig(ctx)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a setting in the config file",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return cli.ConfigKeys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.SetConfig(ctx, args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext(cmd)
		if err != nil {
			return err
		}
		return cli.ConfigPath(ctx)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
