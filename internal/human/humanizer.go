package human

import (
	"fmt"
	"strings"

	"github.com/hzerrad/taskschedule/internal/cronexpr"
	"github.com/hzerrad/taskschedule/internal/schedule"
)

// field indices into schedule.Cron.Fields, in cronexpr.FieldNames order.
const (
	idxYear = iota
	idxMonth
	idxWeek
	idxDay
	idxDayOfWeek
	idxHour
	idxMinute
	idxSecond
)

// Humanizer converts a schedule to a human-readable description.
type Humanizer interface {
	Humanize(s schedule.Schedule) string
}

type humanizer struct {
	// Could add locale/language support here in future
}

// NewHumanizer creates a new humanizer with English templates (v1)
func NewHumanizer() Humanizer {
	return &humanizer{}
}

// Humanize converts a schedule of any variant to human-readable text.
func (h *humanizer) Humanize(s schedule.Schedule) string {
	switch v := s.(type) {
	case *schedule.Date:
		return h.humanizeDate(v)
	case *schedule.Interval:
		return h.humanizeInterval(v)
	case *schedule.CalendarInterval:
		return h.humanizeCalendarInterval(v)
	case *schedule.Cron:
		return h.humanizeCron(v)
	default:
		return "Unrecognized schedule"
	}
}

func (h *humanizer) humanizeDate(d *schedule.Date) string {
	return fmt.Sprintf("Once at %s", formatInstant(d.RunTime, d.Zone))
}

func (h *humanizer) humanizeInterval(iv *schedule.Interval) string {
	parts := []string{fmt.Sprintf("Every %s", formatDuration(iv.Delta))}
	if iv.Start != nil {
		parts = append(parts, fmt.Sprintf("starting %s", formatInstant(*iv.Start, iv.Zone)))
	}
	if iv.End != nil {
		parts = append(parts, fmt.Sprintf("until %s", formatInstant(*iv.End, iv.Zone)))
	}
	return strings.Join(parts, " ")
}

func (h *humanizer) humanizeCalendarInterval(ci *schedule.CalendarInterval) string {
	var units []string
	addUnit := func(n int, name string) {
		if n == 0 {
			return
		}
		if n != 1 {
			name += "s"
		}
		units = append(units, fmt.Sprintf("%d %s", n, name))
	}
	addUnit(ci.Years, "year")
	addUnit(ci.Months, "month")
	addUnit(ci.Weeks, "week")
	addUnit(ci.Days, "day")

	parts := []string{fmt.Sprintf("Every %s", formatList(units))}
	if ci.Hour != 0 || ci.Minute != 0 || ci.Second != 0 {
		parts = append(parts, fmt.Sprintf("at %s", formatClock(ci.Hour, ci.Minute, ci.Second)))
	}
	parts = append(parts, fmt.Sprintf("starting %s", formatCivilDate(ci.StartDate.Year, ci.StartDate.Month, ci.StartDate.Day)))
	if ci.EndDate != nil {
		parts = append(parts, fmt.Sprintf("until %s", formatCivilDate(ci.EndDate.Year, ci.EndDate.Month, ci.EndDate.Day)))
	}
	return strings.Join(parts, " ")
}

func (h *humanizer) humanizeCron(c *schedule.Cron) string {
	var parts []string
	parts = append(parts, h.buildTimePart(c.Fields[idxSecond], c.Fields[idxMinute], c.Fields[idxHour]))

	if day := c.Fields[idxDay]; !day.IsDefault {
		parts = append(parts, h.formatDayOfMonth(day))
	}
	if dow := c.Fields[idxDayOfWeek]; !dow.IsDefault {
		parts = append(parts, h.formatDayOfWeek(dow))
	}
	if week := c.Fields[idxWeek]; !week.IsDefault {
		parts = append(parts, fmt.Sprintf("in ISO week %s", week.String()))
	}
	if month := c.Fields[idxMonth]; !month.IsDefault {
		parts = append(parts, h.buildMonthPart(month))
	}
	if year := c.Fields[idxYear]; !year.IsDefault {
		parts = append(parts, fmt.Sprintf("in %s", year.String()))
	}
	if c.Start != nil {
		parts = append(parts, fmt.Sprintf("starting %s", formatInstant(*c.Start, c.Zone)))
	}
	if c.End != nil {
		parts = append(parts, fmt.Sprintf("until %s", formatInstant(*c.End, c.Zone)))
	}
	return strings.Join(parts, " ")
}

// buildTimePart constructs the time portion of the description from the
// second, minute, and hour fields. A plain 5-field crontab never carries a
// non-default second, so the teacher's minute/hour-only cases are kept and
// a seconds clause is appended only when the second field was given
// explicitly with an expression other than "0".
func (h *humanizer) buildTimePart(second, minute, hour *cronexpr.Field) string {
	secondClause := ""
	if !second.IsDefault {
		if n, ok := singleValue(second.String()); !ok || n != 0 {
			secondClause = fmt.Sprintf(" and %s seconds", second.String())
		}
	}

	min, hr := minute.String(), hour.String()

	// Case 1: Every minute (*, *)
	if min == "*" && hr == "*" {
		return "Every minute" + secondClause
	}

	// Case 2: Minute intervals with wildcard hour (*/N, *)
	if n, ok := stepValue(min); ok && hr == "*" {
		return fmt.Sprintf("Every %d minutes%s", n, secondClause)
	}

	if mn, ok := singleValue(min); ok {
		// Case 4/5: specific minute of every hour (N, *)
		if hr == "*" {
			if mn == 0 {
				return "At the start of every hour" + secondClause
			}
			return fmt.Sprintf("At minute %d of every hour%s", mn, secondClause)
		}
		// Case 6: specific time (N, M)
		if hn, ok := singleValue(hr); ok {
			if mn == 0 && hn == 0 && secondClause == "" {
				return "At midnight"
			}
			return fmt.Sprintf("At %s%s", formatClock(hn, mn, 0), secondClause)
		}
	}

	// Fallback: state both fields' expression text directly.
	return fmt.Sprintf("At minute %s of hour %s%s", min, hr, secondClause)
}

// buildMonthPart constructs the month portion of the description
func (h *humanizer) buildMonthPart(month *cronexpr.Field) string {
	if n, ok := singleValue(month.String()); ok {
		return fmt.Sprintf("in %s", formatMonth(n))
	}
	return fmt.Sprintf("in month %s", month.String())
}

// formatDayOfWeek formats the virtual day-of-week field, whose text is
// either weekday names (e.g. "mon-fri") or plain numeric weekday indices.
func (h *humanizer) formatDayOfWeek(dow *cronexpr.Field) string {
	text := dow.String()
	if text == "mon-fri" {
		return "on weekdays (Mon-Fri)"
	}
	return fmt.Sprintf("on %s", text)
}

// formatDayOfMonth formats the day-of-month field, which in the 8-field
// model can also carry a weekday-position ("3rd fri") or last-day-of-month
// ("last") expression alongside an ordinary day number/range/step.
func (h *humanizer) formatDayOfMonth(dom *cronexpr.Field) string {
	text := dom.String()
	if text == "last" {
		return "on the last day of the month"
	}
	if isWeekdayPosition(text) {
		return fmt.Sprintf("on the %s", text)
	}
	if n, ok := singleValue(text); ok {
		if n == 1 {
			return "on the first day of every month"
		}
		return fmt.Sprintf("on day %d of every month", n)
	}
	return fmt.Sprintf("on day %s of every month", text)
}
