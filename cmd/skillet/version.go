package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillet-cli/skillet/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of skillet",
	Run: func(cmd *cobra.Command, args []string) {
		versionInfo := version.Get()

		jsonInfo, err := versionInfo.JSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting version info: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(jsonInfo)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
