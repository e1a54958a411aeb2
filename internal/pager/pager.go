// Package pager pages through a dataset a fixed number of rows at a time.
package pager

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/stats"
)

// DefaultSize is the number of rows per page.
const DefaultSize = 5

// Pager walks a dataset from the first row. The cursor only moves forward.
type Pager struct {
	ds     *dataset.Dataset
	size   int
	cursor int
}

// New returns a pager over ds. A non-positive size falls back to DefaultSize.
func New(ds *dataset.Dataset, size int) *Pager {
	if size <= 0 {
		size = DefaultSize
	}
	return &Pager{ds: ds, size: size}
}

// Cursor returns the index of the first row of the next page.
func (p *Pager) Cursor() int {
	return p.cursor
}

// Size returns the page size.
func (p *Pager) Size() int {
	return p.size
}

// Next returns the next page and advances the cursor. Past the end it returns
// no rows.
func (p *Pager) Next() (Page, error) {
	rows, err := p.ds.Rows(p.cursor, p.cursor+p.size)
	if err != nil {
		return Page{}, err
	}
	page := Page{Start: p.cursor, Columns: p.ds.Names(), Rows: rows}
	p.cursor += p.size
	return page, nil
}

// Page is a slice of dataset rows starting at Start.
type Page struct {
	Start   int
	Columns []string
	Rows    [][]string
}

// Render writes the page as an aligned table led by the row position.
func (pg Page) Render(w io.Writer) error {
	if len(pg.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No more rows.")
		return err
	}
	headers := append([]string{"#"}, pg.Columns...)
	rows := make([][]string, 0, len(pg.Rows))
	for i, row := range pg.Rows {
		rows = append(rows, append([]string{strconv.Itoa(pg.Start + i)}, row...))
	}
	for _, line := range stats.FormatTable(headers, rows, map[int]bool{0: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
