// Package scheduleser converts schedule.Schedule values to and from the
// versioned, plain-data Record form spec'd for persistence — the same shape
// the source library's __getstate__/__setstate__ pairs produce, minus the
// pickle machinery (spec.md §6's "Serialized schedule form").
package scheduleser

import (
	"fmt"
)

// Kind names the schedule variant a Record holds.
type Kind string

const (
	KindDate             Kind = "date"
	KindInterval         Kind = "interval"
	KindCalendarInterval Kind = "calendarinterval"
	KindCron             Kind = "cron"
)

// VersionError is returned by Deserialize when asked to read a record
// newer than this package understands.
type VersionError struct {
	Kind    Kind
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("cannot deserialize %s definition newer than version 1 (version %d received)",
		e.Kind, e.Version)
}

// Record is the plain-data form of a schedule: every field that appears in
// the wire format of at least one variant. A given Record only populates
// the fields relevant to its Kind; the rest stay at their zero value.
type Record struct {
	Kind    Kind
	Version int

	ID               string
	TaskID           string
	Timezone         string
	Args             []any
	Kwargs           map[string]any
	MisfireGraceTime *float64 // seconds

	// Date
	RunTime *float64 // UTC seconds

	// Interval
	Interval  *float64 // total seconds
	StartTime *float64 // UTC seconds
	EndTime   *float64 // UTC seconds

	// CalendarInterval
	CalInterval *[4]int // years, months, weeks, days
	StartDate   *int    // days since 1970-01-01
	EndDate     *int    // days since 1970-01-01
	TimeOfDay   *[3]int // hour, minute, second; omitted when 00:00:00

	// Cron
	Fields map[string]string // non-default field name -> expression text
}
