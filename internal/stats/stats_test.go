package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeBreaksTiesByFirstOccurrence(t *testing.T) {
	mode, ok := Mode([]string{"b", "a", "a", "b", "c"})
	require.True(t, ok)
	assert.Equal(t, "b", mode)

	n, ok := Mode([]int{3, 1, 1})
	require.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = Mode([]int{})
	assert.False(t, ok)
}

func TestFrequencyDescendingStable(t *testing.T) {
	got := Frequency([]string{"x", "y", "z", "y", "x", "w", "y"})
	assert.Equal(t, []Count[string]{
		{Value: "y", Count: 3},
		{Value: "x", Count: 2},
		{Value: "z", Count: 1},
		{Value: "w", Count: 1},
	}, got)
}

func TestPresentSkipsMissingMarkers(t *testing.T) {
	assert.Equal(t, []string{"Male", "Female"}, present([]string{"Male", "", " ", "NaN", "Female", "NA"}))
	assert.Equal(t, []float64{1990, 300.5}, numbers([]string{"1990.0", "", "abc", "300.5"}))
}

func TestTripKeyHasNoSeparatorSpaces(t *testing.T) {
	assert.Equal(t, "Clark SttoState St", TripKey("Clark St", "State St"))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
	assert.Equal(t, "+++", Sparkline([]float64{2, 2, 2}))
	assert.Equal(t, " @", Sparkline([]float64{0, 10}))

	var hours [24]int
	hours[17] = 4
	line := HourSparkline(hours)
	assert.Len(t, line, 24)
	assert.Equal(t, byte('@'), line[17])
}
