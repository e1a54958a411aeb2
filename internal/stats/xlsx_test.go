package stats

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/bikeshare/internal/dataset/datasettest"
)

func TestWriteXLSX(t *testing.T) {
	report, err := BuildReport(selection("chicago"), chicago(t))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = f.Close()
	})

	assert.Equal(t, []string{sheetSummary, sheetUserTypes, sheetGender, sheetHours}, f.GetSheetList())
	city, err := f.GetCellValue(sheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "chicago", city)

	rows, err := f.GetRows(sheetUserTypes)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Subscriber", "5"}, rows[1])

	hours, err := f.GetRows(sheetHours)
	require.NoError(t, err)
	assert.Len(t, hours, 25)
}

func TestWriteXLSXWithoutDemographics(t *testing.T) {
	ds := datasettest.Load(t, datasettest.Source("washington"), datasettest.WashingtonCSV)
	report, err := BuildReport(selection("washington"), ds)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "dc.xlsx")
	require.NoError(t, WriteXLSX(path, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = f.Close()
	})
	assert.NotContains(t, f.GetSheetList(), sheetGender)
}
