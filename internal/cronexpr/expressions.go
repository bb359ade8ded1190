package cronexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Expression is one parsed atom of a cron field (spec.md §3's Cron
// Expression sum type). NextValue returns the lowest value >= the field's
// current value at t that satisfies the expression, or ok=false if none
// exists within the field's bounds.
type Expression interface {
	NextValue(t time.Time, f *Field) (value int, ok bool)
	String() string
}

// --- All -------------------------------------------------------------

var allRe = regexp.MustCompile(`^\*(?:/(\d+))?$`)

type allExpr struct {
	step int // 0 means "no step"
}

func parseAll(raw string) (Expression, bool, error) {
	m := allRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, false, nil
	}
	step := 0
	if m[1] != "" {
		step, _ = strconv.Atoi(m[1])
		if step == 0 {
			return nil, true, fmt.Errorf("increment must be higher than 0")
		}
	}
	return &allExpr{step: step}, true, nil
}

func (e *allExpr) NextValue(t time.Time, f *Field) (int, bool) {
	minv := f.Min(t)
	maxv := f.Max(t)
	start := f.Value(t)
	if start < minv {
		start = minv
	}

	next := start
	if e.step != 0 {
		next = alignUp(start, minv, e.step)
	}
	if next > maxv {
		return 0, false
	}
	return next, true
}

// alignUp returns the smallest value >= start that is congruent to minv
// modulo step. start is assumed >= minv, so (start-minv) is non-negative and
// a plain Go % is safe to use directly.
func alignUp(start, minv, step int) int {
	rem := (start - minv) % step
	if rem == 0 {
		return start
	}
	return start + (step - rem)
}

func (e *allExpr) String() string {
	if e.step != 0 {
		return fmt.Sprintf("*/%d", e.step)
	}
	return "*"
}

// --- Range -------------------------------------------------------------

var rangeRe = regexp.MustCompile(`^(\d+)(?:-(\d+))?(?:/(\d+))?$`)

type rangeExpr struct {
	first int
	last  *int // nil means "unbounded above field max"
	step  int  // 0 means "no step"
}

func parseRange(raw string) (Expression, bool, error) {
	m := rangeRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, false, nil
	}
	first, _ := strconv.Atoi(m[1])
	var last *int
	if m[2] != "" {
		v, _ := strconv.Atoi(m[2])
		last = &v
	}
	step := 0
	if m[3] != "" {
		step, _ = strconv.Atoi(m[3])
	}
	if last == nil && step == 0 {
		v := first
		last = &v
	}
	if last != nil && first > *last {
		return nil, true, fmt.Errorf("the minimum value in a range must not be higher than the maximum")
	}
	return &rangeExpr{first: first, last: last, step: step}, true, nil
}

func newRangeExpr(first int, last *int) (*rangeExpr, error) {
	if last != nil && first > *last {
		return nil, fmt.Errorf("the minimum value in a range must not be higher than the maximum")
	}
	return &rangeExpr{first: first, last: last}, nil
}

func (e *rangeExpr) NextValue(t time.Time, f *Field) (int, bool) {
	minv := f.Min(t)
	maxv := f.Max(t)
	start := f.Value(t)

	effMin := minv
	if e.first > effMin {
		effMin = e.first
	}
	effMax := maxv
	if e.last != nil && *e.last < effMax {
		effMax = *e.last
	}

	next := effMin
	if start > next {
		next = start
	}
	if e.step != 0 {
		next = alignUp(next, effMin, e.step)
	}
	if next > effMax {
		return 0, false
	}
	return next, true
}

func (e *rangeExpr) String() string {
	var rng string
	if e.last != nil && *e.last != e.first {
		rng = fmt.Sprintf("%d-%d", e.first, *e.last)
	} else {
		rng = strconv.Itoa(e.first)
	}
	if e.step != 0 {
		return fmt.Sprintf("%s/%d", rng, e.step)
	}
	return rng
}

// --- WeekdayRange --------------------------------------------------------

var weekdayRangeRe = regexp.MustCompile(`(?i)^([a-z]+)(?:-([a-z]+))?$`)

type weekdayRangeExpr struct {
	*rangeExpr
}

func parseWeekdayRange(raw string) (Expression, bool, error) {
	m := weekdayRangeRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, false, nil
	}
	first, ok := weekdayIndex(strings.ToLower(m[1]))
	if !ok {
		return nil, true, fmt.Errorf("invalid weekday name %q", m[1])
	}
	var last *int
	if m[2] != "" {
		v, ok := weekdayIndex(strings.ToLower(m[2]))
		if !ok {
			return nil, true, fmt.Errorf("invalid weekday name %q", m[2])
		}
		last = &v
	}
	inner, err := newRangeExpr(first, last)
	if err != nil {
		return nil, true, err
	}
	return &weekdayRangeExpr{rangeExpr: inner}, true, nil
}

func (e *weekdayRangeExpr) String() string {
	if e.last != nil && *e.last != e.first {
		return fmt.Sprintf("%s-%s", weekdays[e.first], weekdays[*e.last])
	}
	return weekdays[e.first]
}

// --- WeekdayPosition -----------------------------------------------------

var weekdayPositionOptions = []string{"1st", "2nd", "3rd", "4th", "5th", "last"}
var weekdayPositionRe = regexp.MustCompile(`(?i)^(1st|2nd|3rd|4th|5th|last) +(\w+)$`)

type weekdayPositionExpr struct {
	optionNum int // index into weekdayPositionOptions; 5 means "last"
	weekday   int // 0=Monday..6=Sunday
}

func parseWeekdayPosition(raw string) (Expression, bool, error) {
	m := weekdayPositionRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, false, nil
	}
	optionNum := -1
	lower := strings.ToLower(m[1])
	for i, opt := range weekdayPositionOptions {
		if opt == lower {
			optionNum = i
			break
		}
	}
	weekday, ok := weekdayIndex(strings.ToLower(m[2]))
	if !ok {
		return nil, true, fmt.Errorf("invalid weekday name %q", m[2])
	}
	return &weekdayPositionExpr{optionNum: optionNum, weekday: weekday}, true, nil
}

// DaysInMonth returns the number of days in the given year/month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInMonth(year int, month time.Month) int { return DaysInMonth(year, month) }

// mondayWeekday returns the Monday=0..Sunday=6 weekday of the first day of
// the given year/month.
func mondayWeekday(year int, month time.Month) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

func (e *weekdayPositionExpr) NextValue(t time.Time, _ *Field) (int, bool) {
	year, month, day := t.Date()
	firstDayWeekday := mondayWeekday(year, month)
	lastDay := daysInMonth(year, month)

	firstHitDay := e.weekday - firstDayWeekday + 1
	if firstHitDay <= 0 {
		firstHitDay += 7
	}

	var target int
	if e.optionNum < 5 {
		target = firstHitDay + e.optionNum*7
	} else {
		target = firstHitDay + (lastDay-firstHitDay)/7*7
	}

	if target >= day && target <= lastDay {
		return target, true
	}
	return 0, false
}

func (e *weekdayPositionExpr) String() string {
	return fmt.Sprintf("%s %s", weekdayPositionOptions[e.optionNum], weekdays[e.weekday])
}

// --- LastDayOfMonth ------------------------------------------------------

var lastDayOfMonthRe = regexp.MustCompile(`(?i)^last$`)

type lastDayOfMonthExpr struct{}

func parseLastDayOfMonth(raw string) (Expression, bool, error) {
	if !lastDayOfMonthRe.MatchString(raw) {
		return nil, false, nil
	}
	return &lastDayOfMonthExpr{}, true, nil
}

func (e *lastDayOfMonthExpr) NextValue(t time.Time, _ *Field) (int, bool) {
	year, month, _ := t.Date()
	return daysInMonth(year, month), true
}

func (e *lastDayOfMonthExpr) String() string {
	return "last"
}
