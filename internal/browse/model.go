// Package browse provides a Bubble Tea table over a filtered dataset.
package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/model"
)

// DefaultPageSize is the number of rows loaded into the table at once.
const DefaultPageSize = 100

const maxColumnWidth = 28

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea browser.
type Model struct {
	ds       *dataset.Dataset
	sel      model.Selection
	pageSize int
	page     int

	table  table.Model
	errMsg string

	width  int
	height int
}

// NewModel constructs a browser over ds. A non-positive pageSize uses DefaultPageSize.
func NewModel(ds *dataset.Dataset, sel model.Selection, pageSize int) *Model {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	m := &Model{ds: ds, sel: sel, pageSize: pageSize}
	m.table = table.New(table.WithFocused(true), table.WithHeight(1))
	m.table.SetStyles(tableStyles())
	m.loadPage()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "n", "right":
			m.movePage(1)
			return m, nil
		case "p", "left":
			m.movePage(-1)
			return m, nil
		case "g", "home":
			m.table.GotoTop()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	bodyHeight := maxInt(1, m.height-3)
	header := fitLines(m.renderHeader(), m.width, 2)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, 1)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Page returns the zero-based page index.
func (m *Model) Page() int {
	return m.page
}

// Pages returns the number of pages; an empty dataset has one empty page.
func (m *Model) Pages() int {
	n := m.ds.Len()
	if n == 0 {
		return 1
	}
	return (n + m.pageSize - 1) / m.pageSize
}

func (m *Model) movePage(delta int) {
	next := m.page + delta
	if next < 0 || next >= m.Pages() {
		return
	}
	m.page = next
	m.loadPage()
	m.table.GotoTop()
}

func (m *Model) loadPage() {
	start := m.page * m.pageSize
	rows, err := m.ds.Rows(start, start+m.pageSize)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	cols, tableRows := buildTableData(m.ds.Names(), start, rows)
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(tableRows)
}

func buildTableData(names []string, start int, rows [][]string) ([]table.Column, []table.Row) {
	headers := append([]string{"#"}, names...)
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	tableRows := make([]table.Row, 0, len(rows))
	for i, row := range rows {
		r := append(table.Row{strconv.Itoa(start + i)}, row...)
		for j, cell := range r {
			if j < len(widths) {
				widths[j] = maxInt(widths[j], runewidth.StringWidth(cell))
			}
		}
		tableRows = append(tableRows, r)
	}
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: minInt(widths[i], maxColumnWidth)}
	}
	return columns, tableRows
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.table.SetWidth(m.width)
	m.table.SetHeight(maxInt(1, m.height-4))
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render(truncateLine("Bikeshare trips: "+m.sel.String(), m.width))
	return title + "\n" + headerStyle.Render(truncateLine(m.rangeSummary(), m.width))
}

func (m *Model) rangeSummary() string {
	total := m.ds.Len()
	if total == 0 {
		return "Rows 0 of 0"
	}
	start := m.page*m.pageSize + 1
	end := minInt(start+m.pageSize-1, total)
	return fmt.Sprintf("Rows %d-%d of %d  page %d/%d", start, end, total, m.page+1, m.Pages())
}

func (m *Model) renderBody() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	if m.ds.Len() == 0 {
		return "No rows match the selected filters."
	}
	return m.table.View()
}

func (m *Model) renderFooter() string {
	return headerStyle.Render("Scroll: up/down  Page: n/p  Top/bottom: g/G  Quit: q")
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
