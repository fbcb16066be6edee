package cmd

import (
	"fmt"

	"github.com/kohta/gotfs/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotfs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gotfs v%s\n", version.Version)
		fmt.Printf("Build time: %s\n", version.BuildTime)
		fmt.Printf("Git commit: %s\n", version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
