package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobeam",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Printf("Built %s\n", version.BuildTime)
		fmt.Println("Beam, shaft and bar analysis with NSCP 2015 load combinations")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
