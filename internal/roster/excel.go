package roster

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"student-roster/internal/store"
)

// ExportSheet is the sheet name written by Export.
const ExportSheet = "Students"

var exportHeader = []interface{}{"ID", "Name", "Class", "Age", "Score"}

// ImportReport summarizes an Import call.
type ImportReport struct {
	Added      int
	Duplicates int
	Blank      int
}

// Export writes the roster as a spreadsheet: a header row, then one row per
// student in storage order.
func (s *Service) Export(w io.Writer) error {
	students, err := s.List()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Error().Err(err).Msg("error closing spreadsheet")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return errors.Wrap(err, "could not name sheet")
	}

	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return errors.Wrap(err, "could not write header")
	}

	for i, st := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{st.ID, st.Name, st.Class, st.Age, st.Score}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "could not write student %s", st.ID)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "could not write spreadsheet")
	}

	s.log.Info().Int("count", len(students)).Msg("roster exported")
	return nil
}

// ExportFile writes the roster spreadsheet to path.
func (s *Service) ExportFile(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}

	if err := s.Export(out); err != nil {
		out.Close()
		return err
	}

	return errors.Wrapf(out.Close(), "could not close %s", path)
}

// Import reads students from the first sheet of a spreadsheet. The first row
// is a header; columns A to E hold id, name, class, age and score. Rows with
// an empty id or an id already on the roster are skipped.
func (s *Service) Import(r io.Reader) (ImportReport, error) {
	var report ImportReport

	f, err := excelize.OpenReader(r)
	if err != nil {
		return report, errors.Wrap(err, "failed to open spreadsheet")
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Error().Err(err).Msg("error closing spreadsheet")
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return report, errors.New("spreadsheet does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return report, errors.Wrapf(err, "failed to get rows from sheet %s", sheetName)
	}

	doc, err := s.store.Load()
	if err != nil {
		return report, err
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		student := store.Student{
			ID:    column(row, 0),
			Name:  column(row, 1),
			Class: column(row, 2),
			Age:   column(row, 3),
			Score: column(row, 4),
		}

		if student.ID == "" {
			report.Blank++
			continue
		}
		if doc.HasStudent(student.ID) {
			s.log.Warn().Int("row", i+1).Str("id", student.ID).Msg("skipping duplicate id during import")
			report.Duplicates++
			continue
		}

		doc.Students = append(doc.Students, student)
		report.Added++
	}

	if report.Added == 0 {
		return report, nil
	}

	if err := s.store.Save(doc); err != nil {
		return ImportReport{}, errors.Wrap(err, "failed to save imported students")
	}

	s.log.Info().
		Int("added", report.Added).
		Int("duplicates", report.Duplicates).
		Int("blank", report.Blank).
		Msg("roster imported")
	return report, nil
}

// ImportFile imports students from the spreadsheet at path.
func (s *Service) ImportFile(path string) (ImportReport, error) {
	in, err := os.Open(path)
	if err != nil {
		return ImportReport{}, errors.Wrapf(err, "could not open %s", path)
	}
	defer in.Close()

	return s.Import(in)
}

func column(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
