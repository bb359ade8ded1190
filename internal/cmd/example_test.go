package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleCommand_Registration(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"example"})
	require.NoError(t, err)
	assert.Equal(t, "example", cmd.Name())
}

func TestExampleCommand_EachKind(t *testing.T) {
	for _, kind := range []string{KindDate, KindInterval, KindCalendarInterval, KindCron} {
		t.Run(kind, func(t *testing.T) {
			cmd := newExampleCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{"--kind", kind})

			require.NoError(t, cmd.Execute())
			assert.Contains(t, buf.String(), "taskschedule next")
			assert.Contains(t, buf.String(), "--kind "+kind)
		})
	}
}

func TestExampleCommand_UnknownKind(t *testing.T) {
	cmd := newExampleCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"--kind", "bogus"})
	assert.Error(t, cmd.Execute())
}
