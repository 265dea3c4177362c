package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"university-registrar/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		fmt.Printf("%s %s (%s)\n", cfg.App.Name, cfg.App.Version, cfg.App.Environment)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
