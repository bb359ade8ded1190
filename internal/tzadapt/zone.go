// Package tzadapt localizes naive wall-clock datetimes into absolute
// instants and resolves the two ways a timezone can misbehave around a
// daylight-saving transition: a wall-clock value that never happens (a
// forward gap) and one that happens twice (a backward overlap).
package tzadapt

import "time"

// LocalDateTime is a wall-clock value with no attached zone. It is the form
// in which the schedule package hands a candidate wall-clock time to
// Localize to be turned into a zone-aware time.Time.
type LocalDateTime struct {
	Year       int
	Month      time.Month
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// DSTChoice picks a branch when a local time is ambiguous (occurs twice).
// DSTUnspecified makes the ambiguity observable via Outcome instead of
// picking silently.
type DSTChoice int

const (
	DSTUnspecified DSTChoice = iota
	DSTFalse
	DSTTrue
)

// Outcome classifies the result of localizing a LocalDateTime.
type Outcome int

const (
	// OutcomeOK means the local time resolved to exactly one instant.
	OutcomeOK Outcome = iota
	// OutcomeGap means the local time falls in a DST forward jump and
	// never occurred in this zone.
	OutcomeGap
	// OutcomeOverlap means the local time occurred twice, once before and
	// once after a DST backward shift.
	OutcomeOverlap
)

// Zone wraps a *time.Location with the explicit localization rules the
// calendar-interval and cron schedules need.
type Zone struct {
	loc *time.Location
}

// New wraps loc. loc must not be nil.
func New(loc *time.Location) *Zone {
	return &Zone{loc: loc}
}

// Location returns the underlying *time.Location.
func (z *Zone) Location() *time.Location {
	return z.loc
}

// String returns the zone's name, e.g. "Europe/Berlin".
func (z *Zone) String() string {
	return z.loc.String()
}

// probeOffsets returns the distinct UTC offsets (seconds east of UTC) that
// this zone reports a few hours before and after the given wall-clock
// instant. DST transitions shift the offset by at most a few hours and
// happen at most once in any such window in every zone in the IANA
// database, so sampling on either side of the target is enough to recover
// both candidate offsets around a transition.
func (z *Zone) probeOffsets(ldt LocalDateTime) []int {
	sample := func(deltaHours int) int {
		t := time.Date(ldt.Year, ldt.Month, ldt.Day, ldt.Hour, ldt.Minute, ldt.Second,
			ldt.Nanosecond, z.loc).Add(time.Duration(deltaHours) * time.Hour)
		_, offset := t.Zone()
		return offset
	}

	before := sample(-4)
	after := sample(4)
	if before == after {
		return []int{before}
	}
	return []int{before, after}
}

// resolve returns, for a candidate UTC offset, the instant that offset
// would produce for ldt, and whether that instant actually carries that
// offset once re-expressed in z (i.e. whether the offset is "real" at that
// moment, as opposed to an artifact of the neighboring side of a
// transition).
func (z *Zone) resolve(ldt LocalDateTime, offsetSeconds int) (time.Time, bool) {
	fixed := time.FixedZone("", offsetSeconds)
	instant := time.Date(ldt.Year, ldt.Month, ldt.Day, ldt.Hour, ldt.Minute, ldt.Second,
		ldt.Nanosecond, fixed)

	back := instant.In(z.loc)
	_, actualOffset := back.Zone()
	matches := back.Year() == ldt.Year && back.Month() == ldt.Month && back.Day() == ldt.Day &&
		back.Hour() == ldt.Hour && back.Minute() == ldt.Minute && back.Second() == ldt.Second &&
		actualOffset == offsetSeconds
	return instant, matches
}

// Localize converts ldt into an absolute instant. If ldt never occurred in
// this zone, it returns OutcomeGap. If ldt occurred twice, it returns
// OutcomeOverlap and the earlier of the two instants unless dst picks the
// other branch; the caller can always recover both candidates by calling
// Localize again with DSTTrue and DSTFalse.
func (z *Zone) Localize(ldt LocalDateTime, dst DSTChoice) (time.Time, Outcome, error) {
	candidates := make([]time.Time, 0, 2)
	for _, offset := range z.probeOffsets(ldt) {
		if instant, ok := z.resolve(ldt, offset); ok {
			candidates = append(candidates, instant)
		}
	}

	switch len(candidates) {
	case 0:
		return time.Time{}, OutcomeGap, nil
	case 1:
		return candidates[0].In(z.loc), OutcomeOK, nil
	default:
		if candidates[0].After(candidates[1]) {
			candidates[0], candidates[1] = candidates[1], candidates[0]
		}
		switch dst {
		case DSTTrue:
			return candidates[0].In(z.loc), OutcomeOverlap, nil
		case DSTFalse:
			return candidates[1].In(z.loc), OutcomeOverlap, nil
		default:
			return candidates[0].In(z.loc), OutcomeOverlap, nil
		}
	}
}

// Normalize re-anchors t in this zone. A Go time.Time carries an absolute
// instant plus a *time.Location, so ordinary arithmetic (t.Add(d)) never
// goes stale the way naive datetime arithmetic does under a fixed-offset
// tzinfo; Normalize exists so every schedule variant has one explicit call
// site matching spec's normalize() step, and so a time.Time built against a
// foreign location gets re-expressed in this zone.
func (z *Zone) Normalize(t time.Time) time.Time {
	return t.In(z.loc)
}

// In converts an instant already expressed in some zone into this zone
// (spec's astimezone).
func (z *Zone) In(t time.Time) time.Time {
	return t.In(z.loc)
}

// Overlap resolves both branches of an ambiguous LocalDateTime, sorted
// ascending. The caller is expected to have already confirmed the
// ambiguity via Localize(ldt, DSTUnspecified).
func (z *Zone) Overlap(ldt LocalDateTime) (earlier, later time.Time) {
	t1, _, _ := z.Localize(ldt, DSTTrue)
	t2, _, _ := z.Localize(ldt, DSTFalse)
	if t1.After(t2) {
		return t2, t1
	}
	return t1, t2
}

// FromTime extracts the wall-clock fields of t as a LocalDateTime in t's
// own location.
func FromTime(t time.Time) LocalDateTime {
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	return LocalDateTime{Year: y, Month: m, Day: d, Hour: h, Minute: mi, Second: s, Nanosecond: t.Nanosecond()}
}
