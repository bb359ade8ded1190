package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainCommand_Registration(t *testing.T) {
	ec := newExplainCommand()
	assert.Contains(t, ec.Use, "explain")
	assert.NotEmpty(t, ec.Short)
	assert.NotEmpty(t, ec.Long)
}

func TestExplainCommand_Cron(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"every minute", []string{}, "Every minute"},
		{"every 15 minutes", []string{"--cron-minute", "*/15"}, "Every 15 minutes"},
		{"midnight", []string{"--cron-hour", "0", "--cron-minute", "0"}, "At midnight"},
		{"weekdays at nine", []string{"--cron-hour", "9", "--cron-minute", "0", "--day-of-week", "mon-fri"}, "on weekdays (Mon-Fri)"},
		{"last day of month", []string{"--day", "last"}, "on the last day of the month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ec := newExplainCommand()
			buf := new(bytes.Buffer)
			ec.SetOut(buf)
			ec.SetArgs(tt.args)
			require.NoError(t, ec.Execute())
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestExplainCommand_CalendarInterval(t *testing.T) {
	ec := newExplainCommand()
	buf := new(bytes.Buffer)
	ec.SetOut(buf)
	ec.SetArgs([]string{
		"--kind", "calendarinterval", "--months", "1",
		"--hour", "2", "--minute", "30", "--start-date", "2016-03-31",
	})
	require.NoError(t, ec.Execute())
	assert.Contains(t, buf.String(), "Every 1 month")
}

func TestExplainCommand_JSON(t *testing.T) {
	ec := newExplainCommand()
	buf := new(bytes.Buffer)
	ec.SetOut(buf)
	ec.SetArgs([]string{"--json"})
	require.NoError(t, ec.Execute())

	var result map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, KindCron, result["kind"])
	assert.NotEmpty(t, result["description"])
}

func TestExplainCommand_MissingRequiredFlag(t *testing.T) {
	ec := newExplainCommand()
	ec.SetOut(new(bytes.Buffer))
	ec.SetArgs([]string{"--kind", "date"})
	assert.Error(t, ec.Execute())
}

func TestExplainCommand_UnknownKind(t *testing.T) {
	ec := newExplainCommand()
	ec.SetOut(new(bytes.Buffer))
	ec.SetArgs([]string{"--kind", "bogus"})
	assert.Error(t, ec.Execute())
}
