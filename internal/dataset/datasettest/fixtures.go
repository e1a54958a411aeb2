// Package datasettest provides small city fixtures for tests.
package datasettest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/model"
)

// ChicagoCSV has seven trips with demographic columns.
//
// month mode 3, day mode Friday, hour mode 17, start station mode Clark St,
// end station mode Lake Shore Dr, total duration 5700, birth years 1975-2000
// with mode 1990. Gender is tied 3/3 with Male first.
const ChicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1,2017-01-01 09:07:57,2017-01-01 09:12:57,300,Clark St,Lake Shore Dr,Subscriber,Male,1990.0
2,2017-03-06 08:00:00,2017-03-06 08:10:00,600,Clark St,State St,Customer,Female,1985.0
3,2017-03-10 17:30:00,2017-03-10 17:45:00,900,Lake Shore Dr,Clark St,Subscriber,Male,1990.0
4,2017-06-23 17:05:00,2017-06-23 17:25:00,1200,Clark St,Lake Shore Dr,Subscriber,,
5,2017-03-10 08:15:00,2017-03-10 08:20:00,300,State St,Clark St,Subscriber,Female,2000.0
6,2017-05-01 17:40:00,2017-05-01 17:50:00,600,Clark St,Lake Shore Dr,Customer,Male,1990.0
7,2017-04-15 12:00:00,2017-04-15 12:30:00,1800,State St,State St,Subscriber,Female,1975.0
`

// WashingtonCSV has no gender or birth year columns.
const WashingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
0,2017-03-06 08:00:00,2017-03-06 08:10:00,600.5,Union Station,Capitol Hill,Subscriber
1,2017-03-10 17:30:00,2017-03-10 17:45:00,900,Capitol Hill,Union Station,Customer
2,2017-01-01 09:07:57,2017-01-01 09:12:57,300,Union Station,Capitol Hill,Subscriber
`

// Source returns the default source entry for a city.
func Source(city string) model.CitySource {
	switch city {
	case "washington":
		return model.CitySource{Name: city, File: "washington.csv", Demographics: false}
	case "new york city":
		return model.CitySource{Name: city, File: "new_york_city.csv", Demographics: true}
	default:
		return model.CitySource{Name: "chicago", File: "chicago.csv", Demographics: true}
	}
}

// WriteCities writes all three city files into dir. New York City reuses the
// Chicago fixture.
func WriteCities(t testing.TB, dir string) {
	t.Helper()
	files := map[string]string{
		"chicago.csv":       ChicagoCSV,
		"new_york_city.csv": ChicagoCSV,
		"washington.csv":    WashingtonCSV,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// Load parses csv for src and fails the test on error.
func Load(t testing.TB, src model.CitySource, csv string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(context.Background(), strings.NewReader(csv), src)
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	return ds
}

// Permute returns csv with its data rows reordered by order (0-based).
func Permute(csv string, order []int) string {
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	header, rows := lines[0], lines[1:]
	out := make([]string, 0, len(lines))
	out = append(out, header)
	for _, idx := range order {
		out = append(out, rows[idx])
	}
	return strings.Join(out, "\n") + "\n"
}
