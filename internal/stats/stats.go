// Package stats contains statistics calculations and reporting.
package stats

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrNoData is returned by every computation over an empty dataset.
var ErrNoData = errors.New("no data available for the selected filters")

// Count is a value with its number of occurrences.
type Count[T comparable] struct {
	Value T
	Count int
}

// counts tallies values in first-occurrence order.
func counts[T comparable](values []T) []Count[T] {
	index := map[T]int{}
	out := []Count[T]{}
	for _, v := range values {
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, Count[T]{Value: v, Count: 1})
	}
	return out
}

// Frequency returns value counts by descending count. Ties keep
// first-occurrence order.
func Frequency[T comparable](values []T) []Count[T] {
	out := counts(values)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Mode returns the most frequent value. Among equally frequent values the one
// seen first wins. ok is false for empty input.
func Mode[T comparable](values []T) (mode T, ok bool) {
	best := -1
	for _, c := range counts(values) {
		if c.Count > best {
			best = c.Count
			mode = c.Value
			ok = true
		}
	}
	return mode, ok
}

// present drops cells that are blank or carry a missing-value marker.
func present(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if isMissing(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func isMissing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NaN", "NA", "<nil>":
		return true
	}
	return false
}

// numbers parses present cells as floats, skipping anything unparsable.
func numbers(values []string) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range present(values) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}
