// Package dataset loads city trip records into a dataframe and filters them.
package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// Source column names.
const (
	ColStartTime    = "Start Time"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColTripDuration = "Trip Duration"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// Derived column names, computed once at load.
const (
	ColMonth     = "month"
	ColDayOfWeek = "day_of_week"
	ColHour      = "hour"
)

// Dataset is a table of trip records for one city.
type Dataset struct {
	City  model.CitySource
	frame dataframe.DataFrame
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.frame.Nrow()
}

// Names returns the column names in table order.
func (d *Dataset) Names() []string {
	return d.frame.Names()
}

// HasColumn reports whether the table contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, n := range d.frame.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// HasDemographics reports whether gender and birth year can be reported.
func (d *Dataset) HasDemographics() bool {
	return d.City.Demographics && d.HasColumn(ColGender) && d.HasColumn(ColBirthYear)
}

// Strings returns a column as raw strings, or nil when it does not exist.
func (d *Dataset) Strings(name string) []string {
	if !d.HasColumn(name) {
		return nil
	}
	return d.frame.Col(name).Records()
}

// Ints returns an integer column such as a derived month or hour.
func (d *Dataset) Ints(name string) ([]int, error) {
	if !d.HasColumn(name) {
		return nil, fmt.Errorf("column %q not found", name)
	}
	values, err := d.frame.Col(name).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to read column %q: %w", name, err)
	}
	return values, nil
}

// Filter keeps rows matching the month and day selectors. "all" disables a
// selector. Source order is preserved.
func (d *Dataset) Filter(month, day string) (*Dataset, error) {
	frame := d.frame
	month = model.Normalize(month)
	day = model.Normalize(day)
	if month != model.AllFilter {
		idx, ok := model.MonthIndex(month)
		if !ok {
			return nil, fmt.Errorf("unknown month %q", month)
		}
		frame = frame.Filter(dataframe.F{
			Colname:    ColMonth,
			Comparator: series.Eq,
			Comparando: idx,
		})
	}
	if day != model.AllFilter {
		if _, ok := model.ParseDay(day); !ok {
			return nil, fmt.Errorf("unknown day %q", day)
		}
		frame = frame.Filter(dataframe.F{
			Colname:    ColDayOfWeek,
			Comparator: series.Eq,
			Comparando: model.Title(day),
		})
	}
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to filter dataset: %w", frame.Err)
	}
	return &Dataset{City: d.City, frame: frame}, nil
}

// Rows returns the records in [start, end) without the header. Out of range
// bounds are clamped; a start past the end yields no rows.
func (d *Dataset) Rows(start, end int) ([][]string, error) {
	n := d.Len()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return [][]string{}, nil
	}
	idx := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		idx = append(idx, i)
	}
	page := d.frame.Subset(idx)
	if page.Err != nil {
		return nil, fmt.Errorf("failed to read rows %d-%d: %w", start, end, page.Err)
	}
	records := page.Records()
	if len(records) == 0 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
