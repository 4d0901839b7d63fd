package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/soundmesh/toolwright/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "toolwright",
	Short: "Toolwright keeps MCP tool functions on the canonical pattern",
	Long: `Toolwright validates tool source against the conformance rules,
generates new convention-correct tools from declarative specs, and
exercises live tools against a mock delegation layer.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log verbosity: debug, info, warn, error")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New(logging.ParseLevel(level))
}
