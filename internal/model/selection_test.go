package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectionCaseInsensitive(t *testing.T) {
	sel, err := ParseSelection("  New York City ", "MARCH", "Friday")
	require.NoError(t, err)
	assert.Equal(t, Selection{City: "new york city", Month: "march", Day: "friday"}, sel)
	assert.Equal(t, "new york city march friday", sel.String())
}

func TestParseSelectionDefaultsToAll(t *testing.T) {
	sel, err := ParseSelection("chicago", "", "")
	require.NoError(t, err)
	assert.Equal(t, AllFilter, sel.Month)
	assert.Equal(t, AllFilter, sel.Day)
}

func TestParseSelectionRejectsUnknownValues(t *testing.T) {
	_, err := ParseSelection("boston", "all", "all")
	require.Error(t, err)
	_, err = ParseSelection("chicago", "july", "all")
	require.Error(t, err)
	_, err = ParseSelection("chicago", "all", "weekend")
	require.Error(t, err)
}

func TestParseCityRejectsAll(t *testing.T) {
	_, ok := ParseCity("all")
	assert.False(t, ok)
}

func TestMonthIndex(t *testing.T) {
	idx, ok := MonthIndex("June")
	require.True(t, ok)
	assert.Equal(t, 6, idx)
	_, ok = MonthIndex("july")
	assert.False(t, ok)
	assert.Equal(t, "March", MonthName(3))
	assert.Equal(t, "9", MonthName(9))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "New York City", Title("new york city"))
	assert.Equal(t, "Monday", Title("monday"))
}
