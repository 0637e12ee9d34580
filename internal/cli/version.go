package cli

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X catalogue/internal/cli.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("catalogue version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
