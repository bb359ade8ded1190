package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCommand_Registration(t *testing.T) {
	nc := newNextCommand()
	assert.NotEmpty(t, nc.Short)
	assert.NotEmpty(t, nc.Long)
	assert.Contains(t, nc.Use, "next")
}

func TestNextCommand_CronText(t *testing.T) {
	nc := newNextCommand()
	buf := new(bytes.Buffer)
	nc.SetOut(buf)
	nc.SetArgs([]string{"--kind", "cron", "--cron-minute", "*/15", "--now", "2016-07-20T16:40:00Z"})

	require.NoError(t, nc.Execute())

	output := buf.String()
	assert.Contains(t, output, "Next 10 runs")
	assert.Contains(t, output, "1.")
	assert.Contains(t, output, "10.")
}

func TestNextCommand_CustomCount(t *testing.T) {
	nc := newNextCommand()
	buf := new(bytes.Buffer)
	nc.SetOut(buf)
	nc.SetArgs([]string{"--cron-minute", "0", "--count", "3", "--now", "2016-07-20T16:40:00Z"})

	require.NoError(t, nc.Execute())

	output := buf.String()
	assert.Contains(t, output, "Next 3 runs")
	assert.Contains(t, output, "3.")
	assert.NotContains(t, output, "4.")
}

func TestNextCommand_JSON(t *testing.T) {
	nc := newNextCommand()
	buf := new(bytes.Buffer)
	nc.SetOut(buf)
	nc.SetArgs([]string{"--cron-minute", "0", "--count", "2", "--now", "2016-07-20T16:40:00Z", "--json"})

	require.NoError(t, nc.Execute())

	var result NextResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, KindCron, result.Kind)
	assert.Len(t, result.NextRuns, 2)
	assert.Equal(t, 1, result.NextRuns[0].Number)
}

func TestNextCommand_CountOutOfRange(t *testing.T) {
	nc := newNextCommand()
	nc.SetOut(new(bytes.Buffer))
	nc.SetArgs([]string{"--count", "0"})
	assert.Error(t, nc.Execute())

	nc2 := newNextCommand()
	nc2.SetOut(new(bytes.Buffer))
	nc2.SetArgs([]string{"--count", "101"})
	assert.Error(t, nc2.Execute())
}

func TestNextCommand_Interval(t *testing.T) {
	nc := newNextCommand()
	buf := new(bytes.Buffer)
	nc.SetOut(buf)
	nc.SetArgs([]string{
		"--kind", "interval", "--every", "125s",
		"--start", "2016-07-20T16:40:00Z",
		"--now", "2016-07-20T16:40:00Z",
		"--count", "3",
	})

	require.NoError(t, nc.Execute())
	output := buf.String()
	assert.Contains(t, output, "Next 3 runs")
}

func TestNextCommand_DateFiresOnce(t *testing.T) {
	nc := newNextCommand()
	buf := new(bytes.Buffer)
	nc.SetOut(buf)
	nc.SetArgs([]string{
		"--kind", "date", "--run-time", "2016-07-20T16:40:00Z",
		"--now", "2016-01-01T00:00:00Z", "--count", "5",
	})

	require.NoError(t, nc.Execute())
	output := buf.String()
	assert.Contains(t, output, "Next 1 run")
}

func TestNextCommand_UnknownKind(t *testing.T) {
	nc := newNextCommand()
	nc.SetOut(new(bytes.Buffer))
	nc.SetArgs([]string{"--kind", "bogus"})
	assert.Error(t, nc.Execute())
}
