package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "taskschedule",
	Short: "taskschedule - compute and explain task schedules",
	Long: `taskschedule computes run times for date, interval, calendarinterval,
and cron schedules, and can render any of them as plain English.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetOutput sets the output and error writers for the root command
func SetOutput(out, err interface{}) {
	if w, ok := out.(interface{ Write([]byte) (int, error) }); ok {
		rootCmd.SetOut(w)
	}
	if w, ok := err.(interface{ Write([]byte) (int, error) }); ok {
		rootCmd.SetErr(w)
	}
}
