package schedule

import (
	"iter"
	"time"

	"github.com/hzerrad/taskschedule/internal/cronexpr"
	"github.com/hzerrad/taskschedule/internal/tzadapt"
)

// civilDate is a calendar date with no time-of-day or zone attached, used to
// walk CalendarInterval's year/month/week/day arithmetic independently of
// any particular wall-clock time.
type civilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func civilDateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{Year: y, Month: m, Day: d}
}

func (d civilDate) ordinal() int64 {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Unix()
}

func (d civilDate) After(o civilDate) bool  { return d.ordinal() > o.ordinal() }
func (d civilDate) Before(o civilDate) bool { return d.ordinal() < o.ordinal() }

func (d civilDate) addDays(days int) civilDate {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	y, m, dd := t.Date()
	return civilDate{Year: y, Month: m, Day: dd}
}

// addYearsMonths carries month overflow into year the way calendar addition
// normally does, without touching day (day validity is checked separately
// so an invalid result can be retried instead of silently rolled over the
// way time.Date would).
func addYearsMonths(year int, month time.Month, years, months int) (int, time.Month) {
	total := int(month) - 1 + months
	year += years + total/12
	rem := total % 12
	if rem < 0 {
		rem += 12
		year--
	}
	return year, time.Month(rem + 1)
}

// advance computes the next candidate date after prev by adding years/months
// to prev's (year, month) while holding day fixed, retrying with another
// years/months increment whenever the result lands on a day that doesn't
// exist in that month (e.g. day=31 landing on April), then adds weeks*7+days
// ([[original_source]] asphalt.tasks.schedules.calendarinterval.CalendarIntervalTrigger.next_fire_time).
func advance(prev civilDate, years, months, weeks, days int) civilDate {
	year, month := prev.Year, prev.Month
	for {
		year, month = addYearsMonths(year, month, years, months)
		if prev.Day <= cronexpr.DaysInMonth(year, month) {
			break
		}
	}
	return civilDate{Year: year, Month: month, Day: prev.Day}.addDays(weeks*7 + days)
}

// CalendarInterval fires on a calendar cadence (every N years/months/weeks/
// days) at a fixed wall-clock time of day, rather than on a fixed duration
// ([[original_source]] asphalt.tasks.schedules.calendarinterval).
type CalendarInterval struct {
	Base
	Years, Months, Weeks, Days int
	Hour, Minute, Second       int
	StartDate                  civilDate
	EndDate                    *civilDate
}

// CalendarIntervalConfig builds a CalendarInterval schedule.
type CalendarIntervalConfig struct {
	ID                         string
	TaskID                     string
	Zone                       *tzadapt.Zone
	Args                       []any
	Kwargs                     map[string]any
	MisfireGraceTime           *time.Duration
	Years, Months, Weeks, Days int
	Hour, Minute, Second       int
	StartDate                  time.Time
	EndDate                    *time.Time
}

// NewCalendarInterval validates cfg and constructs a CalendarInterval schedule.
func NewCalendarInterval(cfg CalendarIntervalConfig) (*CalendarInterval, error) {
	if err := validateZone(cfg.Zone); err != nil {
		return nil, err
	}
	if err := validateMisfireGraceTime(cfg.MisfireGraceTime); err != nil {
		return nil, err
	}
	if cfg.Years == 0 && cfg.Months == 0 && cfg.Weeks == 0 && cfg.Days == 0 {
		return nil, configErrorf("the interval must be at least 1 day long")
	}
	start := civilDateOf(cfg.StartDate)
	var end *civilDate
	if cfg.EndDate != nil {
		e := civilDateOf(*cfg.EndDate)
		end = &e
		if e.Before(start) {
			return nil, configErrorf("end_date cannot be earlier than start_date")
		}
	}
	return &CalendarInterval{
		Base:      newBase(cfg.ID, cfg.TaskID, cfg.Zone, cfg.Args, cfg.Kwargs, cfg.MisfireGraceTime),
		Years:     cfg.Years,
		Months:    cfg.Months,
		Weeks:     cfg.Weeks,
		Days:      cfg.Days,
		Hour:      cfg.Hour,
		Minute:    cfg.Minute,
		Second:    cfg.Second,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// GetNextRunTime walks forward from previous (or StartDate) one calendar
// step at a time, skipping a step entirely when it lands in a DST gap and
// preferring the earlier of the two instants when it lands in a DST overlap
// ([[original_source]] CalendarIntervalTrigger.next_fire_time).
func (c *CalendarInterval) GetNextRunTime(now time.Time, previous *time.Time) (*time.Time, error) {
	resuming := previous != nil

	var prevDate *civilDate
	if previous != nil {
		d := civilDateOf(c.Zone.In(*previous))
		prevDate = &d
	} else if civilDateOf(c.Zone.In(now)).After(c.StartDate) {
		prevDate = &c.StartDate
	}

	for {
		var candidate civilDate
		if prevDate == nil {
			candidate = c.StartDate
		} else {
			candidate = advance(*prevDate, c.Years, c.Months, c.Weeks, c.Days)
		}

		if c.EndDate != nil && candidate.After(*c.EndDate) {
			return nil, nil
		}

		ldt := tzadapt.LocalDateTime{
			Year: candidate.Year, Month: candidate.Month, Day: candidate.Day,
			Hour: c.Hour, Minute: c.Minute, Second: c.Second,
		}
		instant, outcome, err := c.Zone.Localize(ldt, tzadapt.DSTUnspecified)
		if err != nil {
			return nil, err
		}

		switch outcome {
		case tzadapt.OutcomeOK:
			if resuming || !instant.Before(now) {
				return &instant, nil
			}
		case tzadapt.OutcomeOverlap:
			// Unlike the OK branch, a resumed schedule does not bypass
			// this comparison: an ambiguous instant that has already
			// passed both of its occurrences is never returned, even
			// when picking up from a previous run
			// ([[original_source]] CalendarIntervalTrigger.next_fire_time).
			earlier, later := c.Zone.Overlap(ldt)
			if !earlier.Before(now) {
				return &earlier, nil
			}
			if !later.Before(now) {
				return &later, nil
			}
		case tzadapt.OutcomeGap:
			// This calendar day never happened in Zone; skip it entirely
			// and try the next step.
		}

		prevDate = &candidate
	}
}

// GetRunTimes walks the schedule's fire times up to and including now.
func (c *CalendarInterval) GetRunTimes(now time.Time, previous *time.Time) iter.Seq[time.Time] {
	return RunTimes(c, now, previous)
}
