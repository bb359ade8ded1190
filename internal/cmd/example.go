package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// exampleConfigs holds one sample invocation per schedule kind, printed by
// the example command as a starting point to edit.
var exampleConfigs = map[string]string{
	KindDate: `taskschedule next --kind date --timezone UTC \
  --run-time 2016-07-20T16:40:00Z`,
	KindInterval: `taskschedule next --kind interval --timezone UTC \
  --every 125s --start 2016-07-20T16:40:00Z --end 2016-12-25T06:16:00Z`,
	KindCalendarInterval: `taskschedule next --kind calendarinterval --timezone Europe/Berlin \
  --months 1 --hour 2 --minute 30 --start-date 2016-03-31`,
	KindCron: `taskschedule next --kind cron --timezone UTC \
  --cron-minute '*/15' --cron-hour '9-17' --day-of-week mon-fri`,
}

func init() {
	cmd := newExampleCommand()
	rootCmd.AddCommand(cmd)
}

// newExampleCommand creates a fresh example command instance for testing.
func newExampleCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print a starter configuration for a schedule kind",
		Long: `Print a ready-to-edit taskschedule invocation for one of the four
schedule kinds: date, interval, calendarinterval, cron.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, ok := exampleConfigs[kind]
			if !ok {
				return fmt.Errorf("unknown --kind %q (want one of: %s, %s, %s, %s)",
					kind, KindDate, KindInterval, KindCalendarInterval, KindCron)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", KindCron, "Schedule kind: date, interval, calendarinterval, cron")
	return cmd
}
