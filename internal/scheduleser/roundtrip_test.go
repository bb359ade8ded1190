package scheduleser_test

import (
	"testing"
	"time"

	"github.com/hzerrad/taskschedule/internal/cronexpr"
	"github.com/hzerrad/taskschedule/internal/schedule"
	"github.com/hzerrad/taskschedule/internal/scheduleser"
	"github.com/hzerrad/taskschedule/internal/tzadapt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc() *tzadapt.Zone { return tzadapt.New(time.UTC) }

func strp(s string) *string { return &s }

func TestRoundTrip_Date(t *testing.T) {
	runAt := time.Date(2016, time.March, 27, 10, 0, 0, 0, time.UTC)
	orig, err := schedule.NewDate(schedule.DateConfig{
		ID: "sched-1", TaskID: "task-1", Zone: utc(), RunTime: runAt,
		Args: []any{1, "two"}, Kwargs: map[string]any{"x": true},
	})
	require.NoError(t, err)

	rec, err := scheduleser.Serialize(orig)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)
	assert.Equal(t, scheduleser.KindDate, rec.Kind)

	back, err := scheduleser.Deserialize(rec)
	require.NoError(t, err)
	got := back.(*schedule.Date)
	assert.True(t, got.RunTime.Equal(runAt))
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.TaskID, got.TaskID)
	assert.Equal(t, orig.Args, got.Args)
}

func TestRoundTrip_Interval(t *testing.T) {
	start := time.Date(2016, time.July, 20, 16, 40, 0, 0, time.UTC)
	end := time.Date(2016, time.December, 25, 6, 16, 0, 0, time.UTC)
	orig, err := schedule.NewInterval(schedule.IntervalConfig{
		Zone: utc(), Delta: 125 * time.Second, Start: &start, End: &end,
	})
	require.NoError(t, err)

	rec, err := scheduleser.Serialize(orig)
	require.NoError(t, err)

	back, err := scheduleser.Deserialize(rec)
	require.NoError(t, err)
	got := back.(*schedule.Interval)
	assert.Equal(t, orig.Delta, got.Delta)
	assert.True(t, got.Start.Equal(start))
	assert.True(t, got.End.Equal(end))
}

func TestRoundTrip_CalendarInterval(t *testing.T) {
	start := time.Date(2016, time.March, 31, 0, 0, 0, 0, time.UTC)
	orig, err := schedule.NewCalendarInterval(schedule.CalendarIntervalConfig{
		Zone: utc(), Months: 1, Hour: 2, Minute: 30, StartDate: start,
	})
	require.NoError(t, err)

	rec, err := scheduleser.Serialize(orig)
	require.NoError(t, err)
	require.NotNil(t, rec.TimeOfDay)
	assert.Equal(t, [3]int{2, 30, 0}, *rec.TimeOfDay)

	back, err := scheduleser.Deserialize(rec)
	require.NoError(t, err)
	got := back.(*schedule.CalendarInterval)
	assert.Equal(t, orig.Months, got.Months)
	assert.Equal(t, orig.Hour, got.Hour)
	assert.Equal(t, orig.Minute, got.Minute)
}

func TestRoundTrip_Cron(t *testing.T) {
	orig, err := schedule.NewCron(schedule.CronConfig{
		Zone: utc(), Day: strp("5-24/3"), Minute: strp("*/5"),
	})
	require.NoError(t, err)

	rec, err := scheduleser.Serialize(orig)
	require.NoError(t, err)
	assert.Equal(t, "5-24/3", rec.Fields[cronexpr.FieldDay])
	assert.Equal(t, "*/5", rec.Fields[cronexpr.FieldMinute])
	_, hasYear := rec.Fields[cronexpr.FieldYear]
	assert.False(t, hasYear, "default fields must not be serialized")

	back, err := scheduleser.Deserialize(rec)
	require.NoError(t, err)
	got := back.(*schedule.Cron)
	assert.Equal(t, orig.Fields[3].String(), got.Fields[3].String()) // day
	assert.Equal(t, orig.Fields[6].String(), got.Fields[6].String()) // minute
}

func TestDeserialize_RejectsFutureVersion(t *testing.T) {
	rec := scheduleser.Record{Kind: scheduleser.KindDate, Version: 2, Timezone: "UTC"}
	_, err := scheduleser.Deserialize(rec)
	require.Error(t, err)
	assert.EqualError(t, err, "cannot deserialize date definition newer than version 1 (version 2 received)")
}
