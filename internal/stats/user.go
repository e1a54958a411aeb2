package stats

import (
	"github.com/verte-zerg/bikeshare/internal/dataset"
)

// UserStats holds user type counts and, where the city records them,
// gender counts and birth year extremes.
type UserStats struct {
	UserTypes    []Count[string]
	Demographics bool

	Genders           []Count[string]
	HasBirthYears     bool
	EarliestBirthYear int
	RecentBirthYear   int
	CommonBirthYear   int
}

// ComputeUsers counts user types and, when available, demographics.
func ComputeUsers(ds *dataset.Dataset) (UserStats, error) {
	if ds.Len() == 0 {
		return UserStats{}, ErrNoData
	}
	out := UserStats{
		UserTypes:    Frequency(present(ds.Strings(dataset.ColUserType))),
		Demographics: ds.HasDemographics(),
	}
	if !out.Demographics {
		return out, nil
	}
	out.Genders = Frequency(present(ds.Strings(dataset.ColGender)))

	years := numbers(ds.Strings(dataset.ColBirthYear))
	if len(years) == 0 {
		return out, nil
	}
	ints := make([]int, len(years))
	for i, y := range years {
		ints[i] = int(y)
	}
	out.HasBirthYears = true
	out.EarliestBirthYear = ints[0]
	out.RecentBirthYear = ints[0]
	for _, y := range ints[1:] {
		if y < out.EarliestBirthYear {
			out.EarliestBirthYear = y
		}
		if y > out.RecentBirthYear {
			out.RecentBirthYear = y
		}
	}
	out.CommonBirthYear, _ = Mode(ints)
	return out, nil
}
