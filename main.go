package main

import (
	"os"

	"github.com/TristanCacqueray/disco/cmd"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "disco [subcommand]",
	Short:        "disco\n a constraint solver for HM inference with coercive subtyping",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.SolveCmd)
}
