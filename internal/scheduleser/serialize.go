package scheduleser

import (
	"fmt"
	"time"

	"github.com/hzerrad/taskschedule/internal/schedule"
)

func epochDay(y int, m time.Month, d int) int {
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func dayFromEpoch(n int) (int, time.Month, int) {
	t := time.Unix(int64(n)*86400, 0).UTC()
	y, m, d := t.Date()
	return y, m, d
}

func utcSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func fromUTCSeconds(secs float64) time.Time {
	return time.Unix(0, int64(secs*1e9)).UTC()
}

func ptr[T any](v T) *T { return &v }

// Serialize converts s into its plain-data Record form (spec.md §6).
func Serialize(s schedule.Schedule) (Record, error) {
	switch v := s.(type) {
	case *schedule.Date:
		return serializeDate(v), nil
	case *schedule.Interval:
		return serializeInterval(v), nil
	case *schedule.CalendarInterval:
		return serializeCalendarInterval(v), nil
	case *schedule.Cron:
		return serializeCron(v), nil
	default:
		return Record{}, fmt.Errorf("scheduleser: unsupported schedule type %T", s)
	}
}

func baseRecord(kind Kind, b schedule.Base) Record {
	r := Record{
		Kind:     kind,
		Version:  1,
		ID:       b.ID,
		TaskID:   b.TaskID,
		Timezone: b.Zone.String(),
		Args:     b.Args,
		Kwargs:   b.Kwargs,
	}
	if b.MisfireGraceTime != nil {
		r.MisfireGraceTime = ptr(b.MisfireGraceTime.Seconds())
	}
	return r
}

func serializeDate(d *schedule.Date) Record {
	r := baseRecord(KindDate, d.Base)
	r.RunTime = ptr(utcSeconds(d.RunTime))
	return r
}

func serializeInterval(iv *schedule.Interval) Record {
	r := baseRecord(KindInterval, iv.Base)
	r.Interval = ptr(iv.Delta.Seconds())
	if iv.Start != nil {
		r.StartTime = ptr(utcSeconds(*iv.Start))
	}
	if iv.End != nil {
		r.EndTime = ptr(utcSeconds(*iv.End))
	}
	return r
}

func serializeCalendarInterval(ci *schedule.CalendarInterval) Record {
	r := baseRecord(KindCalendarInterval, ci.Base)
	r.CalInterval = &[4]int{ci.Years, ci.Months, ci.Weeks, ci.Days}
	r.StartDate = ptr(epochDay(ci.StartDate.Year, ci.StartDate.Month, ci.StartDate.Day))
	if ci.EndDate != nil {
		r.EndDate = ptr(epochDay(ci.EndDate.Year, ci.EndDate.Month, ci.EndDate.Day))
	}
	if ci.Hour != 0 || ci.Minute != 0 || ci.Second != 0 {
		r.TimeOfDay = &[3]int{ci.Hour, ci.Minute, ci.Second}
	}
	return r
}

func serializeCron(c *schedule.Cron) Record {
	r := baseRecord(KindCron, c.Base)
	r.Fields = make(map[string]string)
	for _, f := range c.Fields {
		if !f.IsDefault {
			r.Fields[f.Name] = f.String()
		}
	}
	if c.Start != nil {
		r.StartTime = ptr(utcSeconds(*c.Start))
	}
	if c.End != nil {
		r.EndTime = ptr(utcSeconds(*c.End))
	}
	return r
}
