package stats

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/model"
)

// Separator closes every section of console output.
var Separator = strings.Repeat("-", 40)

const (
	noDataMessage       = "No data available for the selected filters."
	noDemographicsNote  = "Gender and birth year information is not available for this city"
	noBirthYearsMessage = "Birth year information is missing for the selected rows"
)

// Renderer prints statistic sections, each timed on its own.
type Renderer struct {
	w        io.Writer
	useColor bool
	now      func() time.Time
}

// NewRenderer returns a renderer writing to w. Colour is used only on a terminal.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, useColor: shouldUseColor(w, false), now: time.Now}
}

// All prints the four sections in order.
func (r *Renderer) All(ds *dataset.Dataset) error {
	sections := []func(*dataset.Dataset) error{r.Time, r.Stations, r.Duration, r.Users}
	for _, section := range sections {
		if err := section(ds); err != nil {
			return err
		}
	}
	return nil
}

// Time prints the most frequent times of travel.
func (r *Renderer) Time(ds *dataset.Dataset) error {
	return r.section("Calculating The Most Frequent Times of Travel...", func(p *printer) error {
		ts, err := ComputeTime(ds)
		if err != nil {
			return err
		}
		p.field("Most common month", fmt.Sprintf("%d (%s)", ts.Month, model.MonthName(ts.Month)))
		p.field("Most common day of the week", ts.Day)
		p.field("Most popular start hour", ts.Hour)
		p.field("Trips by hour (0-23)", "["+HourSparkline(ts.HourCounts)+"]")
		return nil
	})
}

// Stations prints the most popular stations and trip.
func (r *Renderer) Stations(ds *dataset.Dataset) error {
	return r.section("Calculating The Most Popular Stations and Trip...", func(p *printer) error {
		ss, err := ComputeStations(ds)
		if err != nil {
			return err
		}
		p.field("Most common start station", ss.Start)
		p.field("Most common end station", ss.End)
		p.field("Most common combination of start and end station", ss.Trip)
		return nil
	})
}

// Duration prints total and mean trip duration.
func (r *Renderer) Duration(ds *dataset.Dataset) error {
	return r.section("Calculating Trip Duration...", func(p *printer) error {
		d, err := ComputeDuration(ds)
		if err != nil {
			return err
		}
		p.field("Total trip duration", fmt.Sprintf("%s (%s)", FormatNumber(d.Total), humanSeconds(d.Total)))
		p.field("Mean travel time", fmt.Sprintf("%s (%s)", FormatNumber(d.Mean), humanSeconds(d.Mean)))
		return nil
	})
}

// Users prints user type counts and demographics.
func (r *Renderer) Users(ds *dataset.Dataset) error {
	return r.section("Calculating User Stats...", func(p *printer) error {
		us, err := ComputeUsers(ds)
		if err != nil {
			return err
		}
		p.counts("Count of user types", "User Type", us.UserTypes)
		if !us.Demographics {
			p.println(noDemographicsNote)
			return nil
		}
		p.counts("Count of gender", "Gender", us.Genders)
		if !us.HasBirthYears {
			p.println(noBirthYearsMessage)
			return nil
		}
		p.field("Earliest birth year", us.EarliestBirthYear)
		p.field("Recent birth year", us.RecentBirthYear)
		p.field("Most common birth year", us.CommonBirthYear)
		return nil
	})
}

func (r *Renderer) section(title string, body func(p *printer) error) error {
	start := r.now()
	p := &printer{w: r.w, useColor: r.useColor}
	p.println("")
	p.println(styled(headingStyle, title, r.useColor))
	p.println("")
	if err := body(p); err != nil {
		if !errors.Is(err, ErrNoData) {
			return err
		}
		p.println(noDataMessage)
	}
	elapsed := r.now().Sub(start).Seconds()
	p.println("")
	p.println(styled(mutedStyle, fmt.Sprintf("This took %s seconds.", FormatNumber(elapsed)), r.useColor))
	p.println(Separator)
	return p.err
}

// FormatNumber prints a float without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func humanSeconds(v float64) string {
	return time.Duration(v * float64(time.Second)).Round(time.Second).String()
}

type printer struct {
	w        io.Writer
	useColor bool
	err      error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}

func (p *printer) field(label string, value any) {
	p.printf("%s %v\n", styled(labelStyle, label+":", p.useColor), value)
}

func (p *printer) counts(label, header string, rows []Count[string]) {
	p.println(styled(labelStyle, label+":", p.useColor))
	if len(rows) == 0 {
		p.println("  (none)")
		return
	}
	table := make([][]string, 0, len(rows))
	for _, c := range rows {
		table = append(table, []string{c.Value, strconv.Itoa(c.Count)})
	}
	for _, line := range FormatTable([]string{header, "Count"}, table, map[int]bool{1: true}) {
		p.println("  " + line)
	}
}
