package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hzerrad/taskschedule/internal/human"
	"github.com/spf13/cobra"
)

// NextCommand wraps cobra.Command with next-specific functionality
type NextCommand struct {
	*cobra.Command
	flags scheduleFlags
	count int
	json  bool
	now   string
}

// NextRun represents a single scheduled run time
type NextRun struct {
	Number    int    `json:"number"`
	Timestamp string `json:"timestamp"`
	Relative  string `json:"relative"`
}

// NextResult represents the complete output for the next command
type NextResult struct {
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Timezone    string    `json:"timezone"`
	NextRuns    []NextRun `json:"next_runs"`
}

func init() {
	rootCmd.AddCommand(newNextCommand().Command)
}

// newNextCommand creates a fresh next command instance for testing.
// This avoids state pollution between tests by creating isolated command
// instances (the teacher's own pattern for every subcommand).
func newNextCommand() *NextCommand {
	nc := &NextCommand{}
	nc.Command = &cobra.Command{
		Args:  cobra.NoArgs,
		RunE:  nc.runNext,
		Use:   "next",
		Short: "Show the next scheduled run times for a schedule",
		Long: `Calculate and display the next scheduled run times for a schedule.

Select a schedule kind with --kind (date, interval, calendarinterval, cron;
default cron) and configure it with the matching flags.

Examples:
  taskschedule next --kind cron --cron-minute '*/15'
  taskschedule next --kind interval --every 125s --count 5
  taskschedule next --kind date --run-time 2016-07-20T16:40:00Z`,
	}

	nc.flags.register(nc.Command)
	nc.Command.Flags().IntVarP(&nc.count, "count", "c", DefaultNextCount, "Number of runs to show (1-100)")
	nc.Command.Flags().BoolVarP(&nc.json, "json", "j", false, "Output as JSON")
	nc.Command.Flags().StringVar(&nc.now, "now", "", "Reference instant to compute from ("+instantLayout+"); defaults to the current time")

	return nc
}

func (nc *NextCommand) runNext(_ *cobra.Command, _ []string) error {
	if nc.count < MinNextCount {
		return fmt.Errorf("count must be at least %d", MinNextCount)
	}
	if nc.count > MaxNextCount {
		return fmt.Errorf("count must be at most %d", MaxNextCount)
	}

	sched, err := nc.flags.build()
	if err != nil {
		return fmt.Errorf("failed to build schedule: %w", err)
	}

	now := time.Now()
	if nc.now != "" {
		parsed, err := parseInstant("now", nc.now)
		if err != nil {
			return err
		}
		now = *parsed
	}

	times, err := nextRunTimes(sched, now, nc.count)
	if err != nil {
		return fmt.Errorf("failed to calculate next runs: %w", err)
	}

	description := human.NewHumanizer().Humanize(sched)

	if nc.json {
		return nc.outputNextJSON(description, times, now)
	}
	return nc.outputNextText(description, times)
}

func (nc *NextCommand) outputNextText(description string, times []time.Time) error {
	runWord := "runs"
	if len(times) == 1 {
		runWord = "run"
	}
	_, _ = fmt.Fprintf(nc.OutOrStdout(), "Next %d %s for \"%s\" (%s):\n\n",
		len(times), runWord, nc.flags.kind, description)

	for i, t := range times {
		_, _ = fmt.Fprintf(nc.OutOrStdout(), "%d. %s\n", i+1, t.Format("2006-01-02 15:04:05 MST"))
	}

	return nil
}

func (nc *NextCommand) outputNextJSON(description string, times []time.Time, now time.Time) error {
	runs := make([]NextRun, len(times))
	for i, t := range times {
		runs[i] = NextRun{
			Number:    i + 1,
			Timestamp: t.Format(time.RFC3339),
			Relative:  formatRelativeTime(now, t),
		}
	}

	timezone := nc.flags.timezone
	if len(times) > 0 {
		timezone = times[0].Location().String()
	}

	result := NextResult{
		Kind:        nc.flags.kind,
		Description: description,
		Timezone:    timezone,
		NextRuns:    runs,
	}

	encoder := json.NewEncoder(nc.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// formatRelativeTime converts a duration between two times to a human-readable format.
func formatRelativeTime(from, to time.Time) string {
	duration := to.Sub(from)

	if duration < time.Minute {
		return "in less than a minute"
	}

	if duration < time.Hour {
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "in 1 minute"
		}
		return fmt.Sprintf("in %d minutes", minutes)
	}

	if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "in 1 hour"
		}
		return fmt.Sprintf("in %d hours", hours)
	}

	days := int(duration.Hours() / 24)
	if days == 1 {
		return "in 1 day"
	}
	return fmt.Sprintf("in %d days", days)
}
