package schedule

import (
	"iter"
	"time"

	"github.com/hzerrad/taskschedule/internal/cronexpr"
	"github.com/hzerrad/taskschedule/internal/tzadapt"
)

// Cron fires according to an 8-field cron expression: year, month, week,
// day, day_of_week, hour, minute, second, in that significance order
// ([[original_source]] asphalt.tasks.schedules.cron).
type Cron struct {
	Base
	Start  *time.Time
	End    *time.Time
	Fields [8]*cronexpr.Field
}

// CronConfig builds a Cron schedule. Each field is a *string so the
// constructor can tell "not specified" (nil) apart from an explicit
// wildcard; a field left nil inherits cronexpr.DefaultExpression once an
// earlier field has been given explicitly, or "*" otherwise.
type CronConfig struct {
	ID               string
	TaskID           string
	Zone             *tzadapt.Zone
	Args             []any
	Kwargs           map[string]any
	MisfireGraceTime *time.Duration
	Start            *time.Time
	End              *time.Time

	Year, Month, Week, Day, DayOfWeek, Hour, Minute, Second *string
}

// NewCron validates cfg and constructs a Cron schedule.
func NewCron(cfg CronConfig) (*Cron, error) {
	if err := validateZone(cfg.Zone); err != nil {
		return nil, err
	}
	if err := validateMisfireGraceTime(cfg.MisfireGraceTime); err != nil {
		return nil, err
	}
	if cfg.Start != nil && cfg.End != nil && cfg.End.Before(*cfg.Start) {
		return nil, configErrorf("end_time cannot be earlier than start_time")
	}

	raw := map[string]*string{
		cronexpr.FieldYear:      cfg.Year,
		cronexpr.FieldMonth:     cfg.Month,
		cronexpr.FieldWeek:      cfg.Week,
		cronexpr.FieldDay:       cfg.Day,
		cronexpr.FieldDayOfWeek: cfg.DayOfWeek,
		cronexpr.FieldHour:      cfg.Hour,
		cronexpr.FieldMinute:    cfg.Minute,
		cronexpr.FieldSecond:    cfg.Second,
	}

	var fields [8]*cronexpr.Field
	assignDefaults := false
	for i, name := range cronexpr.FieldNames {
		var exprs string
		isDefault := false
		switch v := raw[name]; {
		case v != nil:
			exprs = *v
			assignDefaults = true
		case assignDefaults:
			exprs = cronexpr.DefaultExpression(name)
			isDefault = true
		default:
			exprs = "*"
			isDefault = true
		}
		f, err := cronexpr.NewField(name, exprs, isDefault)
		if err != nil {
			return nil, &ConfigError{Msg: err.Error()}
		}
		fields[i] = f
	}

	return &Cron{
		Base:   newBase(cfg.ID, cfg.TaskID, cfg.Zone, cfg.Args, cfg.Kwargs, cfg.MisfireGraceTime),
		Start:  cfg.Start,
		End:    cfg.End,
		Fields: fields,
	}, nil
}

func ceilToSecond(t time.Time) time.Time {
	if t.Nanosecond() == 0 {
		return t
	}
	return t.Truncate(time.Second).Add(time.Second)
}

func ldtFromValues(values map[string]int) tzadapt.LocalDateTime {
	return tzadapt.LocalDateTime{
		Year:   values[cronexpr.FieldYear],
		Month:  time.Month(values[cronexpr.FieldMonth]),
		Day:    values[cronexpr.FieldDay],
		Hour:   values[cronexpr.FieldHour],
		Minute: values[cronexpr.FieldMinute],
		Second: values[cronexpr.FieldSecond],
	}
}

// applyIncrementResult re-anchors cursor at the wall-clock values produced
// by incrementField. It computes the naive (zone-less) difference between
// the new and old wall-clock values and adds that as a plain duration to
// cursor's absolute instant, then normalizes — rather than localizing the
// new values fresh, which could resolve to the wrong branch of a DST
// overlap that has nothing to do with the field being incremented
// ([[original_source]] CronTrigger._increment_field_value).
func (c *Cron) applyIncrementResult(cursor time.Time, values map[string]int) time.Time {
	ldt := ldtFromValues(values)
	naiveNew := time.Date(ldt.Year, ldt.Month, ldt.Day, ldt.Hour, ldt.Minute, ldt.Second, 0, time.UTC)
	naiveOld := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), cursor.Hour(), cursor.Minute(), cursor.Second(), 0, time.UTC)
	diff := naiveNew.Sub(naiveOld)
	return c.Zone.Normalize(cursor.Add(diff))
}

// incrementField bumps the field at index target to the next value it can
// hold, carrying into a less significant... rather, a more significant
// (lower-indexed) field when target is already at its maximum, and
// redirecting straight past any virtual field it lands on to the next real
// field to its left. Returns the new cursor and the field index the caller
// should resume from, or fieldnum<0 if the schedule is exhausted
// ([[original_source]] CronTrigger._increment_field_value).
func (c *Cron) incrementField(cursor time.Time, target int) (time.Time, int, error) {
	values := make(map[string]int)
	i := 0
	n := len(c.Fields)

	for i < n {
		if i < 0 || target < -1 {
			return cursor, -1, nil
		}
		field := c.Fields[i]
		if !field.Real {
			if i == target {
				target--
				i--
			} else {
				i++
			}
			continue
		}
		switch {
		case i < target:
			values[field.Name] = field.Value(cursor)
			i++
		case i > target:
			values[field.Name] = field.Min(cursor)
			i++
		default:
			value := field.Value(cursor)
			maxval := field.Max(cursor)
			if value == maxval {
				target--
				i--
			} else {
				values[field.Name] = value + 1
				i++
			}
		}
	}

	if target < 0 {
		return cursor, -1, nil
	}
	return c.applyIncrementResult(cursor, values), target, nil
}

// setField writes newValue directly into the field at index fieldnum and
// resets every less significant real field to its minimum, localizing the
// result fresh. The source calls its localize with is_dst's default of
// false, so an ambiguous result resolves to the later (standard-time, non-
// DST) instant; a result that falls in a DST gap has no such default to
// fall back on, so it's instead redirected to incrementField on the next
// field to the left ([[original_source]] CronTrigger._set_field_value).
func (c *Cron) setField(cursor time.Time, fieldnum int, newValue int) (time.Time, bool, error) {
	values := make(map[string]int)
	for i, field := range c.Fields {
		if !field.Real {
			continue
		}
		switch {
		case i < fieldnum:
			values[field.Name] = field.Value(cursor)
		case i > fieldnum:
			values[field.Name] = field.Min(cursor)
		default:
			values[field.Name] = newValue
		}
	}

	ldt := ldtFromValues(values)
	instant, outcome, err := c.Zone.Localize(ldt, tzadapt.DSTUnspecified)
	if err != nil {
		return cursor, false, err
	}

	switch outcome {
	case tzadapt.OutcomeOverlap:
		_, later := c.Zone.Overlap(ldt)
		return later, false, nil
	case tzadapt.OutcomeGap:
		return cursor, true, nil
	default:
		return instant, false, nil
	}
}

// GetNextRunTime walks the cursor forward field by field until every field
// agrees on a value, or the schedule is exhausted ([[original_source]]
// CronTrigger.get_next_fire_time).
func (c *Cron) GetNextRunTime(now time.Time, previous *time.Time) (*time.Time, error) {
	var startTime time.Time
	switch {
	case previous != nil:
		startTime = previous.Add(time.Second)
	case c.Start != nil:
		if now.After(*c.Start) {
			startTime = now
		} else {
			startTime = *c.Start
		}
	default:
		startTime = now
	}
	startTime = ceilToSecond(startTime)
	cursor := c.Zone.In(startTime)

	fieldnum := 0
	for fieldnum >= 0 && fieldnum < len(c.Fields) {
		field := c.Fields[fieldnum]
		curr := field.Value(cursor)
		next, ok := field.NextValue(cursor)

		var err error
		switch {
		case !ok:
			cursor, fieldnum, err = c.incrementField(cursor, fieldnum-1)
		case next > curr:
			if field.Real {
				var gap bool
				prior := cursor
				cursor, gap, err = c.setField(cursor, fieldnum, next)
				if err == nil && gap {
					cursor, fieldnum, err = c.incrementField(prior, fieldnum-1)
				} else if err == nil {
					fieldnum++
				}
			} else {
				cursor, fieldnum, err = c.incrementField(cursor, fieldnum)
			}
		default:
			fieldnum++
		}
		if err != nil {
			return nil, err
		}

		if c.End != nil && cursor.After(*c.End) {
			return nil, nil
		}
	}

	if fieldnum < 0 {
		return nil, nil
	}
	return &cursor, nil
}

// GetRunTimes walks the schedule's fire times up to and including now.
func (c *Cron) GetRunTimes(now time.Time, previous *time.Time) iter.Seq[time.Time] {
	return RunTimes(c, now, previous)
}
