package scheduleser

import (
	"fmt"
	"time"

	"github.com/hzerrad/taskschedule/internal/cronexpr"
	"github.com/hzerrad/taskschedule/internal/schedule"
	"github.com/hzerrad/taskschedule/internal/tzadapt"
)

// Deserialize reconstructs a schedule.Schedule from r (spec.md §6). It
// rejects any Version greater than 1 with a *VersionError.
func Deserialize(r Record) (schedule.Schedule, error) {
	if r.Version > 1 {
		return nil, &VersionError{Kind: r.Kind, Version: r.Version}
	}

	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduleser: unknown timezone %q: %w", r.Timezone, err)
	}
	zone := tzadapt.New(loc)

	var misfire *time.Duration
	if r.MisfireGraceTime != nil {
		misfire = ptr(time.Duration(*r.MisfireGraceTime * float64(time.Second)))
	}

	switch r.Kind {
	case KindDate:
		return deserializeDate(r, zone, misfire)
	case KindInterval:
		return deserializeInterval(r, zone, misfire)
	case KindCalendarInterval:
		return deserializeCalendarInterval(r, zone, misfire)
	case KindCron:
		return deserializeCron(r, zone, misfire)
	default:
		return nil, fmt.Errorf("scheduleser: unknown schedule kind %q", r.Kind)
	}
}

func deserializeDate(r Record, zone *tzadapt.Zone, misfire *time.Duration) (schedule.Schedule, error) {
	if r.RunTime == nil {
		return nil, fmt.Errorf("scheduleser: date record missing run_time")
	}
	return schedule.NewDate(schedule.DateConfig{
		ID: r.ID, TaskID: r.TaskID, Zone: zone, Args: r.Args, Kwargs: r.Kwargs,
		MisfireGraceTime: misfire, RunTime: fromUTCSeconds(*r.RunTime),
	})
}

func deserializeInterval(r Record, zone *tzadapt.Zone, misfire *time.Duration) (schedule.Schedule, error) {
	if r.Interval == nil {
		return nil, fmt.Errorf("scheduleser: interval record missing interval")
	}
	cfg := schedule.IntervalConfig{
		ID: r.ID, TaskID: r.TaskID, Zone: zone, Args: r.Args, Kwargs: r.Kwargs,
		MisfireGraceTime: misfire, Delta: time.Duration(*r.Interval * float64(time.Second)),
	}
	if r.StartTime != nil {
		cfg.Start = ptr(fromUTCSeconds(*r.StartTime))
	}
	if r.EndTime != nil {
		cfg.End = ptr(fromUTCSeconds(*r.EndTime))
	}
	return schedule.NewInterval(cfg)
}

func deserializeCalendarInterval(r Record, zone *tzadapt.Zone, misfire *time.Duration) (schedule.Schedule, error) {
	if r.CalInterval == nil || r.StartDate == nil {
		return nil, fmt.Errorf("scheduleser: calendarinterval record missing interval/start_date")
	}
	iv := *r.CalInterval
	y, m, d := dayFromEpoch(*r.StartDate)
	cfg := schedule.CalendarIntervalConfig{
		ID: r.ID, TaskID: r.TaskID, Zone: zone, Args: r.Args, Kwargs: r.Kwargs,
		MisfireGraceTime: misfire,
		Years:            iv[0], Months: iv[1], Weeks: iv[2], Days: iv[3],
		StartDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
	if r.TimeOfDay != nil {
		cfg.Hour, cfg.Minute, cfg.Second = r.TimeOfDay[0], r.TimeOfDay[1], r.TimeOfDay[2]
	}
	if r.EndDate != nil {
		ey, em, ed := dayFromEpoch(*r.EndDate)
		cfg.EndDate = ptr(time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC))
	}
	return schedule.NewCalendarInterval(cfg)
}

func deserializeCron(r Record, zone *tzadapt.Zone, misfire *time.Duration) (schedule.Schedule, error) {
	cfg := schedule.CronConfig{
		ID: r.ID, TaskID: r.TaskID, Zone: zone, Args: r.Args, Kwargs: r.Kwargs,
		MisfireGraceTime: misfire,
	}
	assign := func(name string) *string {
		if v, ok := r.Fields[name]; ok {
			return &v
		}
		return nil
	}
	cfg.Year = assign(cronexpr.FieldYear)
	cfg.Month = assign(cronexpr.FieldMonth)
	cfg.Week = assign(cronexpr.FieldWeek)
	cfg.Day = assign(cronexpr.FieldDay)
	cfg.DayOfWeek = assign(cronexpr.FieldDayOfWeek)
	cfg.Hour = assign(cronexpr.FieldHour)
	cfg.Minute = assign(cronexpr.FieldMinute)
	cfg.Second = assign(cronexpr.FieldSecond)

	if r.StartTime != nil {
		cfg.Start = ptr(fromUTCSeconds(*r.StartTime))
	}
	if r.EndTime != nil {
		cfg.End = ptr(fromUTCSeconds(*r.EndTime))
	}
	return schedule.NewCron(cfg)
}
