package stats

import (
	"fmt"

	"github.com/verte-zerg/bikeshare/internal/dataset"
)

// tripJoiner joins start and end station into the trip key. There is no
// surrounding space, so "A" + "to" + "B" reads "AtoB".
const tripJoiner = "to"

// StationStats holds the most popular stations and trip.
type StationStats struct {
	Start string
	End   string
	Trip  string
}

// TripKey builds the combination key for a start and end station.
func TripKey(start, end string) string {
	return start + tripJoiner + end
}

// ComputeStations finds the most common start station, end station and
// start/end combination.
func ComputeStations(ds *dataset.Dataset) (StationStats, error) {
	if ds.Len() == 0 {
		return StationStats{}, ErrNoData
	}
	starts := ds.Strings(dataset.ColStartStation)
	ends := ds.Strings(dataset.ColEndStation)
	if starts == nil || ends == nil {
		return StationStats{}, fmt.Errorf("station columns missing")
	}
	trips := make([]string, 0, len(starts))
	for i := range starts {
		if isMissing(starts[i]) || isMissing(ends[i]) {
			continue
		}
		trips = append(trips, TripKey(starts[i], ends[i]))
	}
	var out StationStats
	out.Start, _ = Mode(present(starts))
	out.End, _ = Mode(present(ends))
	out.Trip, _ = Mode(trips)
	return out, nil
}
