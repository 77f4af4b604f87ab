package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoro11031/safefs/internal/cli"
	"github.com/zoro11031/safefs/pkg/version"
)

var (
	configPath string
	logLevel   string
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "safefs",
	Short: "Guarded file operations with canonical paths",
	Long: `safefs renames, copies, moves, creates and deletes files without
silently replacing anything that already exists.

Paths may use either / or \ as separator and are always reported in
forward-slash form. When a destination exists you are asked before it is
replaced, unless --overwrite or --yes is given. Defaults are read from
~/.safefs.conf and SAFEFS_* environment variables.`,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.safefs.conf)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warning, error")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Replace existing destinations without asking")
	rootCmd.Version = version.Short()
	rootCmd.AddCommand(versionCmd)
}

// newContext builds the command context with the flags of cmd bound over
// the configuration.
func newContext(cmd *cobra.Command) (*cli.Context, error) {
	ctx, err := cli.NewContext(cli.Options{
		ConfigPath: configPath,
		Flags:      cmd.Flags(),
		AssumeYes:  assumeYes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize context: %w", err)
	}
	return ctx, nil
}

// addOverwriteFlag registers --overwrite/-o, which overrides the OVERWRITE
// setting for one invocation.
func addOverwriteFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("overwrite", "o", false, "Replace an existing destination")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
