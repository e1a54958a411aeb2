package explore

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/dataset/datasettest"
	"github.com/verte-zerg/bikeshare/internal/logging"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/prompt"
)

type fakeHistory struct {
	saved []model.Exploration
	err   error
}

func (f *fakeHistory) InsertExploration(_ context.Context, e model.Exploration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, e)
	return int64(len(f.saved)), nil
}

func newController(t *testing.T, input string, history History, log logrus.FieldLogger) (*Controller, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	datasettest.WriteCities(t, dir)
	loader := dataset.NewLoader(dir, config.NewCityTable(config.DefaultCitySources()), logging.Discard())
	var out bytes.Buffer
	c := NewController(prompt.NewConsole(strings.NewReader(input), &out), loader, history, 5, log)
	tick := time.Unix(0, 0)
	c.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return c, &out
}

func TestRunChicagoAllWithRawPages(t *testing.T) {
	history := &fakeHistory{}
	c, out := newController(t, "chicago\nall\nall\nyes\nyes\nyes\nno\nno\n", history, logging.Discard())

	require.NoError(t, c.Run(context.Background()))
	text := out.String()

	assert.True(t, strings.HasPrefix(text, greeting+"\n"))
	assert.Contains(t, text, "You have chosen: chicago all all\n")
	assert.Contains(t, text, "Most common month: 3 (March)")
	assert.Contains(t, text, "Most common day of the week: Friday")
	assert.Contains(t, text, "Most popular start hour: 17")
	assert.Contains(t, text, "Count of gender:")
	assert.Contains(t, text, "Do you want to see raw data?")
	assert.Equal(t, 3, strings.Count(text, "Do you want to see five more rows?"))
	assert.Contains(t, text, "No more rows.")
	assert.Contains(t, text, "Would you like to restart?")

	require.Len(t, history.saved, 1)
	saved := history.saved[0]
	assert.Equal(t, "chicago", saved.City)
	assert.Equal(t, model.AllFilter, saved.Month)
	assert.Equal(t, 7, saved.Rows)
	assert.Equal(t, 2, saved.PagesViewed)
	assert.True(t, saved.EndedAt.After(saved.StartedAt))
}

func TestRunRepromptsOnInvalidInput(t *testing.T) {
	history := &fakeHistory{}
	c, out := newController(t, "Boston\n  Washington \nJuly\nMARCH\nweekend\nall\nno\nno\n", history, logging.Discard())

	require.NoError(t, c.Run(context.Background()))
	text := out.String()

	assert.Equal(t, 3, strings.Count(text, prompt.RetryMessage))
	assert.Contains(t, text, "You have chosen: washington march all\n")
	assert.Contains(t, text, "Gender and birth year information is not available for this city")
	assert.NotContains(t, text, "Count of gender")
	require.Len(t, history.saved, 1)
	assert.Equal(t, 2, history.saved[0].Rows)
	assert.Equal(t, 0, history.saved[0].PagesViewed)
}

func TestRunRestartsOnYes(t *testing.T) {
	history := &fakeHistory{}
	c, out := newController(t, "chicago\nall\nall\nno\nYES\nwashington\nall\nall\nno\nnope\n", history, logging.Discard())

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(out.String(), greeting))
	require.Len(t, history.saved, 2)
	assert.Equal(t, "chicago", history.saved[0].City)
	assert.Equal(t, "washington", history.saved[1].City)
}

func TestRunEndsCleanlyOnEOF(t *testing.T) {
	history := &fakeHistory{}
	c, _ := newController(t, "chicago\nmarch\n", history, logging.Discard())

	require.NoError(t, c.Run(context.Background()))
	assert.Empty(t, history.saved)
}

func TestRunRecordsHistoryWhenInputEndsDuringPaging(t *testing.T) {
	history := &fakeHistory{}
	c, _ := newController(t, "chicago\nall\nall\nyes\n", history, logging.Discard())

	require.NoError(t, c.Run(context.Background()))
	require.Len(t, history.saved, 1)
	assert.Equal(t, 1, history.saved[0].PagesViewed)
}

func TestRunLogsHistoryFailure(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	c, _ := newController(t, "washington\nall\nall\nno\nno\n", &fakeHistory{err: errors.New("disk full")}, log)

	require.NoError(t, c.Run(context.Background()))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "failed to save exploration", entry.Message)
}

func TestRunWithoutHistory(t *testing.T) {
	c, out := newController(t, "washington\nall\nall\nno\nno\n", nil, logging.Discard())
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Most common start station: Union Station")
}

func TestRunFailsOnMissingData(t *testing.T) {
	loader := dataset.NewLoader(t.TempDir(), config.NewCityTable(config.DefaultCitySources()), logging.Discard())
	var out bytes.Buffer
	c := NewController(prompt.NewConsole(strings.NewReader("chicago\nall\nall\n"), &out), loader, nil, 5, logging.Discard())

	err := c.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open data for chicago")
}

func TestCountWord(t *testing.T) {
	assert.Equal(t, "five", countWord(5))
	assert.Equal(t, "20", countWord(20))
}
