package cronexpr

import (
	"fmt"
	"strings"
	"time"
)

// kind supplies the per-field-type behavior spec.md §4.C describes:
// real fields are ordinary datetime components; virtual fields (week,
// day_of_week) are derived from the full date and can never be written
// back directly.
type kind interface {
	real() bool
	value(t time.Time) int
	min(t time.Time) int
	max(t time.Time) int
	compilers() []func(string) (Expression, bool, error)
}

var baseCompilers = []func(string) (Expression, bool, error){parseAll, parseRange}

type baseKind struct {
	name string
}

func (k baseKind) real() bool { return true }
func (k baseKind) min(time.Time) int {
	return minValues[k.name]
}
func (k baseKind) max(time.Time) int {
	return maxValues[k.name]
}
func (k baseKind) value(t time.Time) int {
	switch k.name {
	case FieldYear:
		return t.Year()
	case FieldMonth:
		return int(t.Month())
	case FieldHour:
		return t.Hour()
	case FieldMinute:
		return t.Minute()
	case FieldSecond:
		return t.Second()
	default:
		panic("cronexpr: unknown base field " + k.name)
	}
}
func (k baseKind) compilers() []func(string) (Expression, bool, error) { return baseCompilers }

type weekKind struct{}

func (weekKind) real() bool         { return false }
func (weekKind) min(time.Time) int  { return minValues[FieldWeek] }
func (weekKind) max(time.Time) int  { return maxValues[FieldWeek] }
func (weekKind) value(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
func (weekKind) compilers() []func(string) (Expression, bool, error) { return baseCompilers }

type dayOfMonthKind struct{}

func (dayOfMonthKind) real() bool        { return true }
func (dayOfMonthKind) min(time.Time) int { return minValues[FieldDay] }
func (dayOfMonthKind) max(t time.Time) int {
	year, month, _ := t.Date()
	return daysInMonth(year, month)
}
func (dayOfMonthKind) value(t time.Time) int { return t.Day() }
func (dayOfMonthKind) compilers() []func(string) (Expression, bool, error) {
	return []func(string) (Expression, bool, error){
		parseAll, parseRange, parseWeekdayPosition, parseLastDayOfMonth,
	}
}

type dayOfWeekKind struct{}

func (dayOfWeekKind) real() bool        { return false }
func (dayOfWeekKind) min(time.Time) int { return minValues[FieldDayOfWeek] }
func (dayOfWeekKind) max(time.Time) int { return maxValues[FieldDayOfWeek] }
func (dayOfWeekKind) value(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
func (dayOfWeekKind) compilers() []func(string) (Expression, bool, error) {
	return []func(string) (Expression, bool, error){parseAll, parseRange, parseWeekdayRange}
}

func kindFor(name string) kind {
	switch name {
	case FieldWeek:
		return weekKind{}
	case FieldDay:
		return dayOfMonthKind{}
	case FieldDayOfWeek:
		return dayOfWeekKind{}
	default:
		return baseKind{name: name}
	}
}

// Field bundles the parsed expressions for one of the 8 cron fields.
type Field struct {
	Name        string
	Real        bool
	IsDefault   bool
	Expressions []Expression
	k           kind
}

// NewField parses exprs (a comma-separated expression string) for the
// named field. name must be one of the 8 FieldNames.
func NewField(name, exprs string, isDefault bool) (*Field, error) {
	k := kindFor(name)
	f := &Field{Name: name, Real: k.real(), IsDefault: isDefault, k: k}

	for _, part := range strings.Split(exprs, ",") {
		expr, err := f.compile(part)
		if err != nil {
			return nil, err
		}
		f.Expressions = append(f.Expressions, expr)
	}
	return f, nil
}

func (f *Field) compile(raw string) (Expression, error) {
	for _, parse := range f.k.compilers() {
		expr, matched, err := parse(raw)
		if err != nil {
			return nil, err
		}
		if matched {
			return expr, nil
		}
	}
	return nil, fmt.Errorf("unrecognized expression %q for field %q", raw, f.Name)
}

// Min returns the field's minimum valid value at t.
func (f *Field) Min(t time.Time) int { return f.k.min(t) }

// Max returns the field's maximum valid value at t (day's max depends on
// t's year/month).
func (f *Field) Max(t time.Time) int { return f.k.max(t) }

// Value reads this field's current value out of t. For virtual fields this
// is derived (ISO week number, weekday), never stored.
func (f *Field) Value(t time.Time) int { return f.k.value(t) }

// NextValue returns the lowest value for this field that is >= its current
// value at t and satisfies every expression, or ok=false if none of the
// field's expressions has one.
func (f *Field) NextValue(t time.Time) (int, bool) {
	best := 0
	found := false
	for _, expr := range f.Expressions {
		if v, ok := expr.NextValue(t, f); ok {
			if !found || v < best {
				best = v
				found = true
			}
		}
	}
	return best, found
}

// String renders the field back to its expression text (comma-joined).
func (f *Field) String() string {
	parts := make([]string, len(f.Expressions))
	for i, e := range f.Expressions {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}
