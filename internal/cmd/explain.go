package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/hzerrad/taskschedule/internal/human"
	"github.com/spf13/cobra"
)

// ExplainCommand wraps cobra.Command with explain-specific functionality
type ExplainCommand struct {
	*cobra.Command
	flags scheduleFlags
	json  bool
}

func init() {
	rootCmd.AddCommand(newExplainCommand().Command)
}

// newExplainCommand creates a fresh explain command instance for testing.
func newExplainCommand() *ExplainCommand {
	ec := &ExplainCommand{}
	ec.Command = &cobra.Command{
		Args:  cobra.NoArgs,
		RunE:  ec.runExplain,
		Use:   "explain",
		Short: "Explain a schedule in plain English",
		Long: `Convert a schedule's configuration to human-readable text.

Select a schedule kind with --kind (date, interval, calendarinterval, cron;
default cron) and configure it with the matching flags.

Examples:
  taskschedule explain --kind cron --cron-minute '*/15' --cron-hour '9-17'
  taskschedule explain --kind calendarinterval --months 1 --hour 2 --minute 30 --start-date 2016-03-31`,
	}

	ec.flags.register(ec.Command)
	ec.Command.Flags().BoolVarP(&ec.json, "json", "j", false, "Output as JSON")

	return ec
}

func (ec *ExplainCommand) runExplain(_ *cobra.Command, _ []string) error {
	sched, err := ec.flags.build()
	if err != nil {
		return fmt.Errorf("failed to build schedule: %w", err)
	}

	description := human.NewHumanizer().Humanize(sched)

	if ec.json {
		return ec.outputJSON(description)
	}
	_, _ = fmt.Fprintln(ec.OutOrStdout(), description)
	return nil
}

func (ec *ExplainCommand) outputJSON(description string) error {
	result := map[string]string{
		"kind":        ec.flags.kind,
		"description": description,
	}

	encoder := json.NewEncoder(ec.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
