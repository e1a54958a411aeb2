package stats

import (
	"fmt"

	"github.com/verte-zerg/bikeshare/internal/dataset"
)

// DurationStats holds total and mean trip duration in seconds.
type DurationStats struct {
	Total float64
	Mean  float64
	Trips int
}

// ComputeDuration sums and averages trip durations. Blank cells are skipped.
func ComputeDuration(ds *dataset.Dataset) (DurationStats, error) {
	if ds.Len() == 0 {
		return DurationStats{}, ErrNoData
	}
	raw := ds.Strings(dataset.ColTripDuration)
	if raw == nil {
		return DurationStats{}, fmt.Errorf("column %q missing", dataset.ColTripDuration)
	}
	values := numbers(raw)
	if len(values) == 0 {
		return DurationStats{}, ErrNoData
	}
	var out DurationStats
	for _, v := range values {
		out.Total += v
	}
	out.Trips = len(values)
	out.Mean = out.Total / float64(out.Trips)
	return out, nil
}
