package stats

import (
	"github.com/verte-zerg/bikeshare/internal/dataset"
)

// TimeStats holds the most frequent times of travel.
type TimeStats struct {
	Month      int
	Day        string
	Hour       int
	HourCounts [24]int
}

// ComputeTime finds the most common month, day of week and start hour.
func ComputeTime(ds *dataset.Dataset) (TimeStats, error) {
	if ds.Len() == 0 {
		return TimeStats{}, ErrNoData
	}
	months, err := ds.Ints(dataset.ColMonth)
	if err != nil {
		return TimeStats{}, err
	}
	hours, err := ds.Ints(dataset.ColHour)
	if err != nil {
		return TimeStats{}, err
	}
	var out TimeStats
	out.Month, _ = Mode(months)
	out.Day, _ = Mode(ds.Strings(dataset.ColDayOfWeek))
	out.Hour, _ = Mode(hours)
	for _, h := range hours {
		if h >= 0 && h < len(out.HourCounts) {
			out.HourCounts[h]++
		}
	}
	return out, nil
}
