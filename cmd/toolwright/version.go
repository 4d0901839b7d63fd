package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soundmesh/toolwright"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of toolwright",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("toolwright version %s\n", strings.TrimSpace(toolwright.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
