// Package cli implements the cmlog commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cmlog",
	Short: "Corrective maintenance log: report equipment issues and notify the teams",
	Long: `cmlog stores equipment defect reports in a JSON log, emails the INST or ICSS
team about each one and tracks its status (sent, ongoing, completed).
Without a subcommand it starts the web service.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
}
