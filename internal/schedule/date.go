package schedule

import (
	"iter"
	"time"

	"github.com/hzerrad/taskschedule/internal/tzadapt"
)

// Date fires exactly once, at RunTime ([[original_source]]
// asphalt.tasks.schedules.date.DateTrigger).
type Date struct {
	Base
	RunTime time.Time
}

// DateConfig builds a Date schedule.
type DateConfig struct {
	ID               string
	TaskID           string
	Zone             *tzadapt.Zone
	Args             []any
	Kwargs           map[string]any
	MisfireGraceTime *time.Duration
	RunTime          time.Time
}

// NewDate validates cfg and constructs a Date schedule.
func NewDate(cfg DateConfig) (*Date, error) {
	if err := validateZone(cfg.Zone); err != nil {
		return nil, err
	}
	if err := validateMisfireGraceTime(cfg.MisfireGraceTime); err != nil {
		return nil, err
	}
	return &Date{
		Base:    newBase(cfg.ID, cfg.TaskID, cfg.Zone, cfg.Args, cfg.Kwargs, cfg.MisfireGraceTime),
		RunTime: cfg.Zone.Normalize(cfg.RunTime),
	}, nil
}

// GetNextRunTime returns RunTime once (when previous is nil) and nil
// afterwards — a Date schedule fires exactly one time.
func (d *Date) GetNextRunTime(_ time.Time, previous *time.Time) (*time.Time, error) {
	if previous != nil {
		return nil, nil
	}
	t := d.RunTime
	return &t, nil
}

// GetRunTimes walks the (single) fire time of the schedule.
func (d *Date) GetRunTimes(now time.Time, previous *time.Time) iter.Seq[time.Time] {
	return RunTimes(d, now, previous)
}
