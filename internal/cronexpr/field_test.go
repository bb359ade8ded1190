package cronexpr_test

import (
	"testing"
	"time"

	"github.com/hzerrad/taskschedule/internal/cronexpr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestField_AllExpression_Step(t *testing.T) {
	f, err := cronexpr.NewField(cronexpr.FieldMinute, "*/15", false)
	require.NoError(t, err)

	v, ok := f.NextValue(date(2016, 1, 1, 0, 7, 0))
	require.True(t, ok)
	assert.Equal(t, 15, v)
}

func TestField_AllExpression_ZeroStepRejected(t *testing.T) {
	_, err := cronexpr.NewField(cronexpr.FieldYear, "*/0", false)
	require.Error(t, err)
	assert.EqualError(t, err, "increment must be higher than 0")
}

func TestField_RangeExpression_MinAboveMax(t *testing.T) {
	_, err := cronexpr.NewField(cronexpr.FieldYear, "2016-2015", false)
	require.Error(t, err)
	assert.EqualError(t, err, "the minimum value in a range must not be higher than the maximum")
}

func TestField_RangeExpression_StepWithinRange(t *testing.T) {
	// day='5-24/3': expect 5,8,11,...,23
	f, err := cronexpr.NewField(cronexpr.FieldDay, "5-24/3", false)
	require.NoError(t, err)

	cur := date(2016, 3, 1, 0, 0, 0)
	var got []int
	for {
		v, ok := f.NextValue(cur)
		if !ok || v > 24 {
			break
		}
		got = append(got, v)
		cur = date(2016, 3, v+1, 0, 0, 0)
	}
	assert.Equal(t, []int{5, 8, 11, 14, 17, 20, 23}, got)
}

func TestField_DayOfWeek_InvalidName(t *testing.T) {
	_, err := cronexpr.NewField(cronexpr.FieldDayOfWeek, "bleh", false)
	require.Error(t, err)
	assert.EqualError(t, err, `invalid weekday name "bleh"`)
}

func TestField_Day_Unrecognized(t *testing.T) {
	_, err := cronexpr.NewField(cronexpr.FieldDay, "bleh", false)
	require.Error(t, err)
	assert.EqualError(t, err, `unrecognized expression "bleh" for field "day"`)
}

func TestField_WeekdayPosition_5thSunJuly(t *testing.T) {
	f, err := cronexpr.NewField(cronexpr.FieldDay, "5th sun", false)
	require.NoError(t, err)

	v, ok := f.NextValue(date(2016, 7, 1, 0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, 31, v)
}

func TestField_WeekdayPosition_LastMonFeb(t *testing.T) {
	f, err := cronexpr.NewField(cronexpr.FieldDay, "last mon", false)
	require.NoError(t, err)

	v, ok := f.NextValue(date(2016, 2, 1, 0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, 29, v)
}

func TestField_WeekdayPosition_1stWedSep(t *testing.T) {
	f, err := cronexpr.NewField(cronexpr.FieldDay, "1st wed", false)
	require.NoError(t, err)

	v, ok := f.NextValue(date(2016, 9, 1, 0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestField_LastDayOfMonth(t *testing.T) {
	f, err := cronexpr.NewField(cronexpr.FieldDay, "last", false)
	require.NoError(t, err)

	for _, tc := range []struct {
		month time.Month
		want  int
	}{
		{time.January, 31},
		{time.February, 29}, // 2016 is a leap year
		{time.April, 30},
	} {
		v, ok := f.NextValue(date(2016, tc.month, 1, 0, 0, 0))
		require.True(t, ok)
		assert.Equal(t, tc.want, v, tc.month.String())
	}
}

func TestField_DayOfMonth_Max(t *testing.T) {
	f, err := cronexpr.NewField(cronexpr.FieldDay, "*", false)
	require.NoError(t, err)
	assert.Equal(t, 29, f.Max(date(2016, 2, 1, 0, 0, 0)))
	assert.Equal(t, 28, f.Max(date(2017, 2, 1, 0, 0, 0)))
}

func TestField_VirtualFieldsDoNotWriteBack(t *testing.T) {
	week, err := cronexpr.NewField(cronexpr.FieldWeek, "*", false)
	require.NoError(t, err)
	assert.False(t, week.Real)

	dow, err := cronexpr.NewField(cronexpr.FieldDayOfWeek, "*", false)
	require.NoError(t, err)
	assert.False(t, dow.Real)

	day, err := cronexpr.NewField(cronexpr.FieldDay, "*", false)
	require.NoError(t, err)
	assert.True(t, day.Real)
}

func TestField_String_RoundTrip(t *testing.T) {
	f, err := cronexpr.NewField(cronexpr.FieldMinute, "5-24/3", false)
	require.NoError(t, err)
	assert.Equal(t, "5-24/3", f.String())
}
