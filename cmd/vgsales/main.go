package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "vgsales",
		Short:         "Explore video game sales: top games, publishers, genres and inferred series",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.dataFile, "data", "", "CSV file to load (default from VGSALES_DATA_FILE)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error|off (default from VGSALES_LOG_LEVEL)")

	rootCmd.AddCommand(
		newSummaryCmd(opts),
		newTopCmd(opts),
		newSeriesCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}
