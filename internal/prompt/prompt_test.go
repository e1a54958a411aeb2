package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/bikeshare/internal/model"
)

func TestPromptStateTransitions(t *testing.T) {
	p := New("City? ", model.ParseCity)
	assert.Equal(t, StateAwaiting, p.State())
	assert.Equal(t, "City? ", p.Message())

	assert.Equal(t, StateInvalid, p.Feed("boston"))
	assert.Equal(t, RetryMessage, p.Message())
	assert.Empty(t, p.Value())

	assert.Equal(t, StateInvalid, p.Feed("all"))
	assert.Equal(t, StateValid, p.Feed("WASHINGTON"))
	assert.Equal(t, "washington", p.Value())

	assert.Equal(t, StateValid, p.Feed("chicago"))
	assert.Equal(t, "washington", p.Value())
}

func TestConsoleAskRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("july\n\nJune\n"), &out)
	month, err := c.Choose("Month? ", model.ParseMonth)
	require.NoError(t, err)
	assert.Equal(t, "june", month)
	assert.Equal(t, "Month? "+RetryMessage+RetryMessage, out.String())
}

func TestConsoleAskEOF(t *testing.T) {
	c := NewConsole(strings.NewReader("nope\n"), io.Discard)
	_, err := c.Choose("Day? ", model.ParseDay)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsoleAcceptsFinalLineWithoutNewline(t *testing.T) {
	c := NewConsole(strings.NewReader("Friday"), io.Discard)
	day, err := c.Choose("Day? ", model.ParseDay)
	require.NoError(t, err)
	assert.Equal(t, "friday", day)
}

func TestConfirm(t *testing.T) {
	c := NewConsole(strings.NewReader("YES\r\ny\nno\n"), io.Discard)
	for _, want := range []bool{true, false, false} {
		got, err := c.Confirm("Again? ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	got, err := c.Confirm("Again? ")
	assert.False(t, got)
	assert.ErrorIs(t, err, io.EOF)
}
