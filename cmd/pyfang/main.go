// Package main provides the entry point for the pyfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/pyfang/cmd/pyfang/commands"
	"github.com/Sumatoshi-tech/pyfang/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "pyfang",
		Short: "Pyfang - static complexity metrics for Python sources",
		Long: `Pyfang computes static complexity metrics from Python sources.

Commands:
  cc        Cyclomatic complexity per function, method, and class
  hal       Raw Halstead operator and operand counts`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewCCCommand())
	rootCmd.AddCommand(commands.NewHalCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "pyfang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
