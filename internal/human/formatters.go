package human

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hzerrad/taskschedule/internal/tzadapt"
)

// formatInstant renders an absolute instant in zone's local wall clock.
func formatInstant(t time.Time, zone *tzadapt.Zone) string {
	return zone.In(t).Format("2006-01-02 15:04:05 MST")
}

// formatClock formats an hour/minute/second as HH:MM or HH:MM:SS.
func formatClock(hour, minute, second int) string {
	if second == 0 {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}

// formatCivilDate formats a calendar date with no time-of-day attached.
func formatCivilDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// formatDuration renders a duration the way a schedule description reads
// best: whole units only, falling back to Go's own formatting for anything
// that doesn't divide evenly into a single unit.
func formatDuration(d time.Duration) string {
	switch {
	case d%(24*time.Hour) == 0 && d >= 24*time.Hour:
		days := int(d / (24 * time.Hour))
		return pluralize(days, "day")
	case d%time.Hour == 0 && d >= time.Hour:
		return pluralize(int(d/time.Hour), "hour")
	case d%time.Minute == 0 && d >= time.Minute:
		return pluralize(int(d/time.Minute), "minute")
	case d%time.Second == 0:
		return pluralize(int(d/time.Second), "second")
	default:
		return d.String()
	}
}

func pluralize(n int, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", n, unit)
}

// formatList formats a slice of strings with Oxford comma
func formatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return fmt.Sprintf("%s and %s", items[0], items[1])
	default:
		last := items[len(items)-1]
		rest := items[:len(items)-1]
		return fmt.Sprintf("%s, and %s", strings.Join(rest, ", "), last)
	}
}

// formatMonth returns the name for a month (1=January, 12=December)
func formatMonth(month int) string {
	months := []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	if month >= 1 && month <= 12 {
		return months[month-1]
	}
	return fmt.Sprintf("month%d", month)
}

var (
	singleRe          = regexp.MustCompile(`^\d+$`)
	stepRe            = regexp.MustCompile(`^\*/(\d+)$`)
	weekdayPositionRe = regexp.MustCompile(`(?i)^(1st|2nd|3rd|4th|5th|last) +\w+$`)
)

// singleValue reports whether text is a bare integer (a single-value
// field expression), returning its parsed value.
func singleValue(text string) (int, bool) {
	if !singleRe.MatchString(text) {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// stepValue reports whether text is a "*/N" expression, returning N.
func stepValue(text string) (int, bool) {
	m := stepRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	return n, true
}

// isWeekdayPosition reports whether text renders a WeekdayPosition
// expression such as "3rd fri" or "last mon".
func isWeekdayPosition(text string) bool {
	return weekdayPositionRe.MatchString(text)
}
