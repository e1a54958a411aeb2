package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/model"
)

// ErrUnknownCity is returned when a city has no configured source.
var ErrUnknownCity = errors.New("unknown city")

const ctxCheckEvery = 4096

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
}

// Loader reads city sources from a data directory.
type Loader struct {
	dataDir string
	cities  config.CityTable
	log     logrus.FieldLogger
}

// NewLoader constructs a loader over an immutable city table.
func NewLoader(dataDir string, cities config.CityTable, log logrus.FieldLogger) *Loader {
	return &Loader{dataDir: dataDir, cities: cities, log: log}
}

// Path returns the resolved source path for a city.
func (l *Loader) Path(city string) (string, error) {
	src, ok := l.cities.Lookup(city)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	if filepath.IsAbs(src.File) {
		return src.File, nil
	}
	return filepath.Join(l.dataDir, src.File), nil
}

// Load reads the city source for sel and applies its month and day filters.
func (l *Loader) Load(ctx context.Context, sel model.Selection) (*Dataset, error) {
	src, ok := l.cities.Lookup(sel.City)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, sel.City)
	}
	path, err := l.Path(sel.City)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data for %s: %w", sel.City, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only source.
			_ = cerr
		}
	}()

	full, err := Read(ctx, file, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	filtered, err := full.Filter(sel.Month, sel.Day)
	if err != nil {
		return nil, err
	}
	l.log.WithFields(logrus.Fields{
		"city":     sel.City,
		"month":    sel.Month,
		"day":      sel.Day,
		"rows":     full.Len(),
		"filtered": filtered.Len(),
		"elapsed":  time.Since(start),
	}).Debug("loaded dataset")
	return filtered, nil
}

// Read parses CSV records and derives the month, day_of_week and hour columns
// from the start timestamp.
func Read(ctx context.Context, r io.Reader, src model.CitySource) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	frame := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", frame.Err)
	}
	ds := &Dataset{City: src, frame: frame}
	if !ds.HasColumn(ColStartTime) {
		return nil, fmt.Errorf("missing %q column", ColStartTime)
	}

	starts := ds.Strings(ColStartTime)
	months := make([]int, len(starts))
	days := make([]string, len(starts))
	hours := make([]int, len(starts))
	for i, raw := range starts {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		ts, err := ParseTimestamp(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		months[i] = int(ts.Month())
		days[i] = ts.Weekday().String()
		hours[i] = ts.Hour()
	}

	frame = frame.
		Mutate(series.New(months, series.Int, ColMonth)).
		Mutate(series.New(days, series.String, ColDayOfWeek)).
		Mutate(series.New(hours, series.Int, ColHour))
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to derive columns: %w", frame.Err)
	}
	ds.frame = frame
	return ds, nil
}

// ParseTimestamp parses a start or end time in the formats found in trip data.
func ParseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}
