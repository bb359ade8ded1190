package cmd

import (
	"fmt"
	"time"

	"github.com/hzerrad/taskschedule/internal/schedule"
	"github.com/hzerrad/taskschedule/internal/tzadapt"
	"github.com/spf13/cobra"
)

// Schedule kinds a user can pick with --kind.
const (
	KindDate             = "date"
	KindInterval         = "interval"
	KindCalendarInterval = "calendarinterval"
	KindCron             = "cron"
)

// instantLayout is the timestamp format every instant-valued flag accepts.
const instantLayout = time.RFC3339

// dateLayout is the calendar-date format CalendarInterval's date flags accept.
const dateLayout = "2006-01-02"

// scheduleFlags holds every flag needed to build any of the four schedule
// variants; next and explain share this so each kind's configuration
// surface is defined exactly once.
type scheduleFlags struct {
	kind     string
	timezone string
	id       string
	taskID   string

	// Date
	runTime string

	// Interval
	every string
	start string
	end   string

	// CalendarInterval
	years, months, weeks, days int
	hour, minute, second       int
	startDate, endDate         string

	// Cron
	cronYear, cronMonth, cronWeek     string
	cronDay, cronDayOfWeek            string
	cronHour, cronMinute, cronSecond  string
}

// register attaches every schedule-building flag to cmd.
func (f *scheduleFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()

	fs.StringVar(&f.kind, "kind", KindCron, "Schedule kind: date, interval, calendarinterval, cron")
	fs.StringVar(&f.timezone, "timezone", "UTC", "IANA timezone name")
	fs.StringVar(&f.id, "id", "", "Schedule identifier")
	fs.StringVar(&f.taskID, "task-id", "", "Task identifier")

	fs.StringVar(&f.runTime, "run-time", "", "Date: fire instant ("+instantLayout+")")

	fs.StringVar(&f.every, "every", "", "Interval: duration between runs (e.g. 125s, 1h30m)")
	fs.StringVar(&f.start, "start", "", "Interval/Cron: earliest instant to fire ("+instantLayout+")")
	fs.StringVar(&f.end, "end", "", "Interval/Cron: latest instant to fire ("+instantLayout+")")

	fs.IntVar(&f.years, "years", 0, "CalendarInterval: years between runs")
	fs.IntVar(&f.months, "months", 0, "CalendarInterval: months between runs")
	fs.IntVar(&f.weeks, "weeks", 0, "CalendarInterval: weeks between runs")
	fs.IntVar(&f.days, "days", 0, "CalendarInterval: days between runs")
	fs.IntVar(&f.hour, "hour", 0, "CalendarInterval: hour of day to fire")
	fs.IntVar(&f.minute, "minute", 0, "CalendarInterval: minute of hour to fire")
	fs.IntVar(&f.second, "second", 0, "CalendarInterval: second of minute to fire")
	fs.StringVar(&f.startDate, "start-date", "", "CalendarInterval: first eligible date ("+dateLayout+")")
	fs.StringVar(&f.endDate, "end-date", "", "CalendarInterval: last eligible date ("+dateLayout+")")

	fs.StringVar(&f.cronYear, "year", "", "Cron: year field expression")
	fs.StringVar(&f.cronMonth, "month", "", "Cron: month field expression")
	fs.StringVar(&f.cronWeek, "week", "", "Cron: ISO week field expression")
	fs.StringVar(&f.cronDay, "day", "", "Cron: day-of-month field expression")
	fs.StringVar(&f.cronDayOfWeek, "day-of-week", "", "Cron: day-of-week field expression")
	fs.StringVar(&f.cronHour, "cron-hour", "", "Cron: hour field expression")
	fs.StringVar(&f.cronMinute, "cron-minute", "", "Cron: minute field expression")
	fs.StringVar(&f.cronSecond, "cron-second", "", "Cron: second field expression")
}

func parseInstant(flagName, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(instantLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", flagName, raw, err)
	}
	return &t, nil
}

func parseDate(flagName, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", flagName, raw, err)
	}
	return &t, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// build constructs the schedule.Schedule named by --kind from the flags'
// current values.
func (f *scheduleFlags) build() (schedule.Schedule, error) {
	loc, err := time.LoadLocation(f.timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown --timezone %q: %w", f.timezone, err)
	}
	zone := tzadapt.New(loc)

	switch f.kind {
	case KindDate:
		runTime, err := parseInstant("run-time", f.runTime)
		if err != nil {
			return nil, err
		}
		if runTime == nil {
			return nil, fmt.Errorf("--run-time is required for --kind=%s", KindDate)
		}
		return schedule.NewDate(schedule.DateConfig{
			ID: f.id, TaskID: f.taskID, Zone: zone, RunTime: *runTime,
		})

	case KindInterval:
		if f.every == "" {
			return nil, fmt.Errorf("--every is required for --kind=%s", KindInterval)
		}
		delta, err := time.ParseDuration(f.every)
		if err != nil {
			return nil, fmt.Errorf("invalid --every %q: %w", f.every, err)
		}
		start, err := parseInstant("start", f.start)
		if err != nil {
			return nil, err
		}
		end, err := parseInstant("end", f.end)
		if err != nil {
			return nil, err
		}
		return schedule.NewInterval(schedule.IntervalConfig{
			ID: f.id, TaskID: f.taskID, Zone: zone, Delta: delta, Start: start, End: end,
		})

	case KindCalendarInterval:
		startDate, err := parseDate("start-date", f.startDate)
		if err != nil {
			return nil, err
		}
		if startDate == nil {
			return nil, fmt.Errorf("--start-date is required for --kind=%s", KindCalendarInterval)
		}
		endDate, err := parseDate("end-date", f.endDate)
		if err != nil {
			return nil, err
		}
		return schedule.NewCalendarInterval(schedule.CalendarIntervalConfig{
			ID: f.id, TaskID: f.taskID, Zone: zone,
			Years: f.years, Months: f.months, Weeks: f.weeks, Days: f.days,
			Hour: f.hour, Minute: f.minute, Second: f.second,
			StartDate: *startDate, EndDate: endDate,
		})

	case KindCron:
		start, err := parseInstant("start", f.start)
		if err != nil {
			return nil, err
		}
		end, err := parseInstant("end", f.end)
		if err != nil {
			return nil, err
		}
		return schedule.NewCron(schedule.CronConfig{
			ID: f.id, TaskID: f.taskID, Zone: zone, Start: start, End: end,
			Year:      optionalString(f.cronYear),
			Month:     optionalString(f.cronMonth),
			Week:      optionalString(f.cronWeek),
			Day:       optionalString(f.cronDay),
			DayOfWeek: optionalString(f.cronDayOfWeek),
			Hour:      optionalString(f.cronHour),
			Minute:    optionalString(f.cronMinute),
			Second:    optionalString(f.cronSecond),
		})

	default:
		return nil, fmt.Errorf("unknown --kind %q (want one of: %s, %s, %s, %s)",
			f.kind, KindDate, KindInterval, KindCalendarInterval, KindCron)
	}
}

// nextRunTimes returns up to count successive run times of s, starting with
// the one GetNextRunTime reports for from (for a Date schedule that is its
// RunTime, even when RunTime lies before from). Unlike
// schedule.RunTimes (which walks a backlog up to "now"), this drives
// GetNextRunTime forward unbounded: once a previous run time is supplied,
// every variant's gate against "now" is bypassed and it simply advances, so
// repeated calls with the growing previous value produce the future
// sequence a user wants from "next".
func nextRunTimes(s schedule.Schedule, from time.Time, count int) ([]time.Time, error) {
	out := make([]time.Time, 0, count)
	var previous *time.Time
	for len(out) < count {
		next, err := s.GetNextRunTime(from, previous)
		if err != nil {
			return out, err
		}
		if next == nil {
			break
		}
		out = append(out, *next)
		t := *next
		previous = &t
	}
	return out, nil
}
