package stats

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary   = "Summary"
	sheetUserTypes = "User Types"
	sheetGender    = "Gender"
	sheetHours     = "Hours"
	defaultSheet   = "Sheet1"
)

// WriteXLSX exports a report as an Excel workbook.
func WriteXLSX(path string, report Report) error {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close; SaveAs already flushed.
			_ = cerr
		}
	}()
	if err := f.SetSheetName(defaultSheet, sheetSummary); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSheet(f, sheetSummary, []any{"Field", "Value"}, summaryRows(report)); err != nil {
		return err
	}
	if report.Users != nil {
		if err := writeSheet(f, sheetUserTypes, []any{"User Type", "Count"}, countRows(report.Users.UserTypes)); err != nil {
			return err
		}
		if report.Users.Demographics {
			if err := writeSheet(f, sheetGender, []any{"Gender", "Count"}, countRows(report.Users.Genders)); err != nil {
				return err
			}
		}
	}
	if report.Time != nil {
		rows := make([][]any, 0, len(report.Time.HourCounts))
		for hour, n := range report.Time.HourCounts {
			rows = append(rows, []any{hour, n})
		}
		if err := writeSheet(f, sheetHours, []any{"Hour", "Trips"}, rows); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}
	all := append([][]any{header}, rows...)
	for i := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &all[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func summaryRows(report Report) [][]any {
	rows := [][]any{
		{"City", report.Selection.City},
		{"Month", report.Selection.Month},
		{"Day", report.Selection.Day},
		{"Rows", report.Rows},
	}
	if report.Time != nil {
		rows = append(rows,
			[]any{"Most common month", report.Time.Month},
			[]any{"Most common day of the week", report.Time.Day},
			[]any{"Most popular start hour", report.Time.Hour},
		)
	}
	if report.Stations != nil {
		rows = append(rows,
			[]any{"Most common start station", report.Stations.Start},
			[]any{"Most common end station", report.Stations.End},
			[]any{"Most common combination of start and end station", report.Stations.Trip},
		)
	}
	if report.Duration != nil {
		rows = append(rows,
			[]any{"Total trip duration", report.Duration.Total},
			[]any{"Mean travel time", report.Duration.Mean},
		)
	}
	if report.Users != nil {
		switch {
		case !report.Users.Demographics:
			rows = append(rows, []any{"Demographics", noDemographicsNote})
		case report.Users.HasBirthYears:
			rows = append(rows,
				[]any{"Earliest birth year", report.Users.EarliestBirthYear},
				[]any{"Recent birth year", report.Users.RecentBirthYear},
				[]any{"Most common birth year", report.Users.CommonBirthYear},
			)
		}
	}
	return rows
}

func countRows(counts []Count[string]) [][]any {
	rows := make([][]any, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []any{c.Value, c.Count})
	}
	return rows
}
