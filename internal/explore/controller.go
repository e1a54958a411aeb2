// Package explore drives the interactive select, summarize and page cycle.
package explore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/pager"
	"github.com/verte-zerg/bikeshare/internal/prompt"
	"github.com/verte-zerg/bikeshare/internal/stats"
)

const greeting = "Hello! Let's explore some US bikeshare data!"

var (
	cityQuestion  = "Which city would you like to look at: Chicago, New York City or Washington? "
	monthQuestion = "Which month would you like to look at: January, February, March, April, May, June or all? "
	dayQuestion   = "Which day would you like to look at: Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday or all? "
	rawQuestion   = "\nDo you want to see raw data? Please enter 'yes' or 'no'. "
	moreQuestion  = "\nDo you want to see %s more rows? Please enter 'yes' or 'no'. "
	restartPrompt = "\nWould you like to restart? Enter yes or no.\n"
)

// Loader loads the filtered dataset for a selection.
type Loader interface {
	Load(ctx context.Context, sel model.Selection) (*dataset.Dataset, error)
}

// History records completed explorations.
type History interface {
	InsertExploration(ctx context.Context, e model.Exploration) (int64, error)
}

// Controller runs the interactive loop.
type Controller struct {
	console  *prompt.Console
	loader   Loader
	history  History
	pageSize int
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewController wires a console to a loader. history may be nil.
func NewController(console *prompt.Console, loader Loader, history History, pageSize int, log logrus.FieldLogger) *Controller {
	return &Controller{
		console:  console,
		loader:   loader,
		history:  history,
		pageSize: pageSize,
		log:      log,
		now:      time.Now,
	}
}

// Run repeats explorations until the user declines to restart or input ends.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		restart, err := c.RunOnce(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !restart {
			return nil
		}
	}
}

// RunOnce performs one select, summarize and page cycle and reports whether
// the user asked to restart.
func (c *Controller) RunOnce(ctx context.Context) (bool, error) {
	startedAt := c.now()
	sel, err := c.Selection()
	if err != nil {
		return false, err
	}
	ds, err := c.loader.Load(ctx, sel)
	if err != nil {
		return false, err
	}
	if err := stats.NewRenderer(c.console.Out()).All(ds); err != nil {
		return false, err
	}
	pages, err := c.Page(ds)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	c.record(ctx, model.Exploration{
		StartedAt:   startedAt,
		EndedAt:     c.now(),
		City:        sel.City,
		Month:       sel.Month,
		Day:         sel.Day,
		Rows:        ds.Len(),
		PagesViewed: pages,
	})
	if err != nil {
		return false, err
	}
	return c.console.Confirm(restartPrompt)
}

// Selection collects a validated city, month and day.
func (c *Controller) Selection() (model.Selection, error) {
	out := c.console.Out()
	if _, err := fmt.Fprintln(out, greeting); err != nil {
		return model.Selection{}, err
	}
	city, err := c.console.Choose(cityQuestion, model.ParseCity)
	if err != nil {
		return model.Selection{}, err
	}
	month, err := c.console.Choose(monthQuestion, model.ParseMonth)
	if err != nil {
		return model.Selection{}, err
	}
	day, err := c.console.Choose(dayQuestion, model.ParseDay)
	if err != nil {
		return model.Selection{}, err
	}
	sel := model.Selection{City: city, Month: month, Day: day}
	if _, err := fmt.Fprintf(out, "You have chosen: %s\n%s\n", sel, stats.Separator); err != nil {
		return model.Selection{}, err
	}
	return sel, nil
}

// Page shows raw rows while the user keeps answering yes and returns the
// number of non-empty pages shown.
func (c *Controller) Page(ds *dataset.Dataset) (int, error) {
	p := pager.New(ds, c.pageSize)
	question := rawQuestion
	pages := 0
	for {
		ok, err := c.console.Confirm(question)
		if err != nil || !ok {
			return pages, err
		}
		page, err := p.Next()
		if err != nil {
			return pages, err
		}
		if err := page.Render(c.console.Out()); err != nil {
			return pages, err
		}
		if len(page.Rows) > 0 {
			pages++
		}
		question = fmt.Sprintf(moreQuestion, countWord(p.Size()))
	}
}

var smallNumbers = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

func countWord(n int) string {
	if n >= 0 && n < len(smallNumbers) {
		return smallNumbers[n]
	}
	return strconv.Itoa(n)
}

func (c *Controller) record(ctx context.Context, e model.Exploration) {
	if c.history == nil {
		return
	}
	if _, err := c.history.InsertExploration(ctx, e); err != nil {
		c.log.WithError(err).Warn("failed to save exploration")
	}
}
