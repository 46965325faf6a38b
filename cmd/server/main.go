package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wems/internal/config"
)

var cfg config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "wems",
	Short: "WEMS site server and content storage tools",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, jsonServerCmd, migrateCmd, exportCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
