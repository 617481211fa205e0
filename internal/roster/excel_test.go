package roster

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"student-roster/internal/store"
)

func sheetBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestExport(t *testing.T) {
	svc, _ := newService(t)
	require.NoError(t, svc.Add(store.Student{ID: "1", Name: "李雷", Class: "C1", Age: "20", Score: "90"}))
	require.NoError(t, svc.Add(store.Student{ID: "2", Name: "Han", Class: "C2", Age: "21", Score: "85"}))

	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, ExportSheet, f.GetSheetName(0))

	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ID", "Name", "Class", "Age", "Score"},
		{"1", "李雷", "C1", "20", "90"},
		{"2", "Han", "C2", "21", "85"},
	}, rows)
}

func TestExportImport_RoundTrip(t *testing.T) {
	src, _ := newService(t)
	students := []store.Student{
		{ID: "1", Name: "A", Class: "C1", Age: "20", Score: "90"},
		{ID: "2", Name: "B", Class: "C1", Age: "19", Score: "70"},
	}
	for _, s := range students {
		require.NoError(t, src.Add(s))
	}

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, src.ExportFile(path))

	dst, _ := newService(t)
	report, err := dst.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, ImportReport{Added: 2}, report)

	list, err := dst.List()
	require.NoError(t, err)
	assert.Equal(t, students, list)
}

func TestImport_SkipsBlankAndDuplicateRows(t *testing.T) {
	svc, st := newService(t)
	require.NoError(t, svc.Add(store.Student{ID: "1", Name: "Existing"}))

	buf := sheetBytes(t, [][]interface{}{
		{"ID", "Name", "Class", "Age", "Score"},
		{"1", "Dup of stored"},
		{"", "No id"},
		{" 2 ", " Two ", "C", "18", "60"},
		{"2", "Dup within sheet"},
		{"3", "Three"},
	})

	report, err := svc.Import(buf)
	require.NoError(t, err)
	assert.Equal(t, ImportReport{Added: 2, Duplicates: 2, Blank: 1}, report)

	doc, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, []store.Student{
		{ID: "1", Name: "Existing"},
		{ID: "2", Name: "Two", Class: "C", Age: "18", Score: "60"},
		{ID: "3", Name: "Three"},
	}, doc.Students)
}

func TestImport_NothingToAddDoesNotWrite(t *testing.T) {
	svc, st := newService(t)

	buf := sheetBytes(t, [][]interface{}{{"ID", "Name"}})
	report, err := svc.Import(buf)
	require.NoError(t, err)
	assert.Equal(t, ImportReport{}, report)
	assert.NoFileExists(t, st.Path())
}

func TestImport_NotASpreadsheet(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Import(bytes.NewBufferString("id,name\n1,A\n"))
	assert.Error(t, err)
}
