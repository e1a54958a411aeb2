package stats

import (
	"errors"

	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/model"
)

// Report bundles the four statistic groups for one selection. A nil group
// means the filtered dataset had no rows for it.
type Report struct {
	Selection model.Selection
	Rows      int
	Time      *TimeStats
	Stations  *StationStats
	Duration  *DurationStats
	Users     *UserStats
}

// BuildReport runs every computation over ds.
func BuildReport(sel model.Selection, ds *dataset.Dataset) (Report, error) {
	report := Report{Selection: sel, Rows: ds.Len()}

	ts, err := ComputeTime(ds)
	if err := keep(err); err != nil {
		return Report{}, err
	}
	if err == nil {
		report.Time = &ts
	}
	ss, err := ComputeStations(ds)
	if err := keep(err); err != nil {
		return Report{}, err
	}
	if err == nil {
		report.Stations = &ss
	}
	dur, err := ComputeDuration(ds)
	if err := keep(err); err != nil {
		return Report{}, err
	}
	if err == nil {
		report.Duration = &dur
	}
	us, err := ComputeUsers(ds)
	if err := keep(err); err != nil {
		return Report{}, err
	}
	if err == nil {
		report.Users = &us
	}
	return report, nil
}

// keep drops ErrNoData so that callers only see real failures.
func keep(err error) error {
	if errors.Is(err, ErrNoData) {
		return nil
	}
	return err
}
