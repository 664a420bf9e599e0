package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
)

var rootCmd = &cobra.Command{
	Use:   "mangawatch",
	Short: "Report new chapters of the manga you have been reading",
	Long: `mangawatch reads your browser history, finds the last chapter you read of
every series and tells you which ones have newer chapters online.

Running it without a subcommand is the same as "mangawatch check".`,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")

	bindCheckFlags(rootCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
