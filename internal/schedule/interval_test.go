package schedule_test

import (
	"testing"
	"time"

	"github.com/hzerrad/taskschedule/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_RejectsSubSecondDelta(t *testing.T) {
	_, err := schedule.NewInterval(schedule.IntervalConfig{Zone: utc(), Delta: 500 * time.Millisecond})
	require.Error(t, err)
	assert.EqualError(t, err, "the interval must be at least 1 second long")
}

func TestInterval_RejectsEndBeforeStart(t *testing.T) {
	start := time.Date(2016, time.January, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err := schedule.NewInterval(schedule.IntervalConfig{
		Zone: utc(), Delta: time.Hour, Start: &start, End: &end,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "end_time cannot be earlier than start_time")
}

func TestInterval_AdvancesFromPrevious(t *testing.T) {
	iv, err := schedule.NewInterval(schedule.IntervalConfig{Zone: utc(), Delta: time.Hour})
	require.NoError(t, err)

	prev := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	now := prev.Add(3 * time.Hour)
	next, err := iv.GetNextRunTime(now, &prev)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.Equal(prev.Add(time.Hour)))
}

func TestInterval_AnchorsOnStartWhenInFuture(t *testing.T) {
	start := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	iv, err := schedule.NewInterval(schedule.IntervalConfig{Zone: utc(), Delta: time.Hour, Start: &start})
	require.NoError(t, err)

	now := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	next, err := iv.GetNextRunTime(now, nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.Equal(start))
}

func TestInterval_StopsAtEnd(t *testing.T) {
	end := time.Date(2016, time.January, 1, 2, 0, 0, 0, time.UTC)
	iv, err := schedule.NewInterval(schedule.IntervalConfig{Zone: utc(), Delta: time.Hour, End: &end})
	require.NoError(t, err)

	prev := end
	now := end.Add(24 * time.Hour)
	next, err := iv.GetNextRunTime(now, &prev)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestInterval_RunTimesAreMonotonic(t *testing.T) {
	start := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	iv, err := schedule.NewInterval(schedule.IntervalConfig{Zone: utc(), Delta: 15 * time.Minute})
	require.NoError(t, err)

	now := start.Add(time.Hour)
	got := schedule.CollectRunTimes(iv, now, &start)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].After(got[i-1]))
	}
	assert.True(t, got[len(got)-1].Equal(now))
}

// Spec vectors: start=2016-07-20 16:40, end=2016-12-25 06:16, delta=125s.
func TestInterval_SpecVectors(t *testing.T) {
	start := time.Date(2016, time.July, 20, 16, 40, 0, 0, time.UTC)
	end := time.Date(2016, time.December, 25, 6, 16, 0, 0, time.UTC)
	iv, err := schedule.NewInterval(schedule.IntervalConfig{
		Zone: utc(), Delta: 125 * time.Second, Start: &start, End: &end,
	})
	require.NoError(t, err)

	now1 := time.Date(2016, time.July, 18, 0, 0, 0, 0, time.UTC)
	next1, err := iv.GetNextRunTime(now1, nil)
	require.NoError(t, err)
	require.NotNil(t, next1)
	assert.True(t, next1.Equal(start), "want %v got %v", start, next1)

	prev2 := start
	now2 := start.Add(time.Second)
	next2, err := iv.GetNextRunTime(now2, &prev2)
	require.NoError(t, err)
	require.NotNil(t, next2)
	want2 := time.Date(2016, time.July, 20, 16, 42, 5, 0, time.UTC)
	assert.True(t, next2.Equal(want2), "want %v got %v", want2, next2)

	now3 := time.Date(2016, time.July, 20, 16, 43, 0, 0, time.UTC)
	next3, err := iv.GetNextRunTime(now3, nil)
	require.NoError(t, err)
	require.NotNil(t, next3)
	assert.True(t, next3.Equal(now3), "want %v got %v", now3, next3)
}
