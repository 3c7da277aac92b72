package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sphuta-tms",
	Short: "Sphuta TMS timesheet management REST API",
	Long: `sphuta-tms is a small business-management API for freelancers:
clients, projects, timesheets, time entries, invoices and estimates,
stored in SQLite and served over HTTP.`,
	RunE: runServe, // bare invocation starts the server
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to config file")
	rootCmd.AddCommand(serveCmd)
}
