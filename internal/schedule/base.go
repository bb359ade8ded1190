// Package schedule implements the four recurrence models a task can be
// bound to — Date, Interval, CalendarInterval and Cron — and the run-time
// iterator that walks a schedule forward in time.
package schedule

import (
	"fmt"
	"iter"
	"time"

	"github.com/hzerrad/taskschedule/internal/tzadapt"
)

// Schedule computes run times for a task. GetNextRunTime returns the first
// fire time strictly after previous (or the first fire time at/after now
// when previous is nil), or nil if the schedule has no more fire times.
type Schedule interface {
	GetNextRunTime(now time.Time, previous *time.Time) (*time.Time, error)
	GetRunTimes(now time.Time, previous *time.Time) iter.Seq[time.Time]
}

// ConfigError reports a schedule definition that violates one of its own
// invariants (spec.md §7's ConfigurationError).
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// Base holds the fields every schedule variant carries regardless of its
// recurrence model: identity, the task it fires, the timezone its wall-clock
// fields are interpreted in, the arguments passed to the task, and how late
// a missed fire time may still be honored.
type Base struct {
	ID               string
	TaskID           string
	Zone             *tzadapt.Zone
	Args             []any
	Kwargs           map[string]any
	MisfireGraceTime *time.Duration
}

func newBase(id, taskID string, zone *tzadapt.Zone, args []any, kwargs map[string]any, misfire *time.Duration) Base {
	return Base{
		ID:               id,
		TaskID:           taskID,
		Zone:             zone,
		Args:             args,
		Kwargs:           kwargs,
		MisfireGraceTime: misfire,
	}
}

func validateMisfireGraceTime(d *time.Duration) error {
	if d != nil && *d <= 0 {
		return configErrorf("misfire_grace_time must be positive")
	}
	return nil
}

func validateZone(z *tzadapt.Zone) error {
	if z == nil {
		return configErrorf("timezone is required")
	}
	return nil
}

// RunTimes implements the shared GetRunTimes loop (spec.md §4.E): it calls
// s.GetNextRunTime repeatedly, starting from previous, yielding each result
// up to and including now, and stops at the first result that is nil, an
// error, or after now.
func RunTimes(s Schedule, now time.Time, previous *time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		prev := previous
		for {
			next, err := s.GetNextRunTime(now, prev)
			if err != nil || next == nil {
				return
			}
			if next.After(now) {
				return
			}
			if !yield(*next) {
				return
			}
			t := *next
			prev = &t
		}
	}
}

// CollectRunTimes drains the iterator returned by GetRunTimes into a slice,
// for callers that don't need lazy evaluation (e.g. tests).
func CollectRunTimes(s Schedule, now time.Time, previous *time.Time) []time.Time {
	var out []time.Time
	for t := range s.GetRunTimes(now, previous) {
		out = append(out, t)
	}
	return out
}
