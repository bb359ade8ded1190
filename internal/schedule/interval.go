package schedule

import (
	"iter"
	"time"

	"github.com/hzerrad/taskschedule/internal/tzadapt"
)

// Interval fires every Delta, between an optional Start and End, forever
// otherwise ([[original_source]] asphalt.tasks.schedules.interval.IntervalTrigger).
type Interval struct {
	Base
	Start *time.Time
	End   *time.Time
	Delta time.Duration
}

// IntervalConfig builds an Interval schedule.
type IntervalConfig struct {
	ID               string
	TaskID           string
	Zone             *tzadapt.Zone
	Args             []any
	Kwargs           map[string]any
	MisfireGraceTime *time.Duration
	Start            *time.Time
	End              *time.Time
	Delta            time.Duration
}

// NewInterval validates cfg and constructs an Interval schedule.
func NewInterval(cfg IntervalConfig) (*Interval, error) {
	if err := validateZone(cfg.Zone); err != nil {
		return nil, err
	}
	if err := validateMisfireGraceTime(cfg.MisfireGraceTime); err != nil {
		return nil, err
	}
	if cfg.Delta < time.Second {
		return nil, configErrorf("the interval must be at least 1 second long")
	}
	if cfg.Start != nil && cfg.End != nil && cfg.End.Before(*cfg.Start) {
		return nil, configErrorf("end_time cannot be earlier than start_time")
	}
	return &Interval{
		Base:  newBase(cfg.ID, cfg.TaskID, cfg.Zone, cfg.Args, cfg.Kwargs, cfg.MisfireGraceTime),
		Start: cfg.Start,
		End:   cfg.End,
		Delta: cfg.Delta,
	}, nil
}

// GetNextRunTime advances from previous by Delta, or anchors on Start (or
// now) for the first fire time. Gaps introduced by a forward DST transition
// are collapsed by Zone.Normalize, matching the source trigger's use of
// timezone.normalize on every computed instant.
func (iv *Interval) GetNextRunTime(now time.Time, previous *time.Time) (*time.Time, error) {
	var candidate time.Time
	switch {
	case previous != nil:
		candidate = previous.Add(iv.Delta)
	case iv.Start != nil:
		if iv.Start.After(now) {
			candidate = *iv.Start
		} else {
			candidate = now
		}
	default:
		candidate = now
	}

	if iv.End != nil && candidate.After(*iv.End) {
		return nil, nil
	}

	normalized := iv.Zone.Normalize(candidate)
	return &normalized, nil
}

// GetRunTimes walks the schedule's fire times up to and including now.
func (iv *Interval) GetRunTimes(now time.Time, previous *time.Time) iter.Seq[time.Time] {
	return RunTimes(iv, now, previous)
}
