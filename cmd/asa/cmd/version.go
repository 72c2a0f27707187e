package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/asa/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Current()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "asa v%s\n", info.Version)
		fmt.Fprintf(out, "  Git Commit: %s\n", info.GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
		if verbose {
			for _, name := range []string{"lexer", "parser", "grammar", "history"} {
				fmt.Fprintf(out, "  %-11s %s\n", name+":", version.ComponentVersion(name))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
