package cronexpr

import "math"

// Field names, in the canonical 8-field order spec.md §3 requires.
const (
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldWeek      = "week"
	FieldDay       = "day"
	FieldDayOfWeek = "day_of_week"
	FieldHour      = "hour"
	FieldMinute    = "minute"
	FieldSecond    = "second"
)

// FieldNames lists the 8 fields in canonical order.
var FieldNames = []string{
	FieldYear, FieldMonth, FieldWeek, FieldDay, FieldDayOfWeek, FieldHour, FieldMinute, FieldSecond,
}

// Per-field min/max bounds (spec.md §3). day's max is computed per
// year/month rather than looked up.
var (
	minValues = map[string]int{
		FieldYear:      1970,
		FieldMonth:     1,
		FieldWeek:      1,
		FieldDay:       1,
		FieldDayOfWeek: 0,
		FieldHour:      0,
		FieldMinute:    0,
		FieldSecond:    0,
	}

	maxValues = map[string]int{
		FieldYear:      math.MaxInt64,
		FieldMonth:     12,
		FieldWeek:      53,
		FieldDayOfWeek: 6,
		FieldHour:      23,
		FieldMinute:    59,
		FieldSecond:    59,
	}

	// defaultExpressions is the expression text assigned to a field when
	// the caller did not specify one, but an earlier field in the
	// sequence was specified explicitly (spec.md §4.B "is_default").
	defaultExpressions = map[string]string{
		FieldYear:      "*",
		FieldMonth:     "1",
		FieldWeek:      "*",
		FieldDay:       "1",
		FieldDayOfWeek: "*",
		FieldHour:      "0",
		FieldMinute:    "0",
		FieldSecond:    "0",
	}
)

// weekdays maps the lowercase three-letter weekday abbreviation to its
// index with Monday = 0, per spec.md's ".. note:: The first weekday is
// always monday."
var weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// DefaultExpression returns the expression text a field falls back to once
// an earlier field in the sequence has been given explicitly.
func DefaultExpression(name string) string {
	return defaultExpressions[name]
}

func weekdayIndex(name string) (int, bool) {
	for i, w := range weekdays {
		if w == name {
			return i, true
		}
	}
	return 0, false
}
