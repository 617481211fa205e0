package menu

import (
	"github.com/pkg/errors"

	"student-roster/internal/roster"
	"student-roster/internal/store"
)

func (m *Menu) teacherLoop() error {
	for {
		m.println("\n--- Teacher Menu ---")
		m.println("1. Add student")
		m.println("2. Remove student")
		m.println("3. Update student")
		m.println("4. List students")
		m.println("5. Import students from spreadsheet")
		m.println("6. Export students to spreadsheet")
		m.println("7. Exit")

		choice, err := m.prompt("Choose an option: ")
		if err != nil {
			return err
		}
		m.log.Debug().Str("menu", "teacher").Str("choice", choice).Msg("menu choice")

		switch choice {
		case "1":
			err = m.addStudent()
		case "2":
			err = m.removeStudent()
		case "3":
			err = m.updateStudent()
		case "4":
			err = m.listStudents()
		case "5":
			err = m.importStudents()
		case "6":
			err = m.exportStudents()
		case "7":
			return nil
		default:
			m.println("Invalid option!")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) addStudent() error {
	var st store.Student
	fields := []struct {
		label string
		dst   *string
	}{
		{"Student ID: ", &st.ID},
		{"Name: ", &st.Name},
		{"Class: ", &st.Class},
		{"Age: ", &st.Age},
		{"Score: ", &st.Score},
	}
	for _, f := range fields {
		v, err := m.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	err := m.roster.Add(st)
	switch {
	case err == nil:
		m.println("Student added successfully!")
	case errors.Is(err, roster.ErrDuplicateID):
		m.println("That student ID already exists!")
	case errors.Is(err, roster.ErrEmptyID):
		m.println("Student ID cannot be empty!")
	default:
		return err
	}
	return nil
}

func (m *Menu) removeStudent() error {
	id, err := m.prompt("Student ID to remove: ")
	if err != nil {
		return err
	}

	res, err := m.roster.Remove(id)
	if res.Accounts > 0 {
		m.printf("Removed %d linked account(s).\n", res.Accounts)
	}
	switch {
	case err == nil:
		m.println("Student removed successfully!")
	case errors.Is(err, roster.ErrNotFound):
		m.println("Student not found")
	default:
		return err
	}
	return nil
}

func (m *Menu) updateStudent() error {
	id, err := m.prompt("Student ID to update: ")
	if err != nil {
		return err
	}

	current, err := m.roster.Get(id)
	if errors.Is(err, roster.ErrNotFound) {
		m.println("Student not found")
		return nil
	}
	if err != nil {
		return err
	}

	m.printf("Current: %s\n", formatStudent(*current))

	var p roster.Patch
	fields := []struct {
		label string
		old   string
		dst   *string
	}{
		{"New name", current.Name, &p.Name},
		{"New class", current.Class, &p.Class},
		{"New age", current.Age, &p.Age},
		{"New score", current.Score, &p.Score},
	}
	for _, f := range fields {
		v, err := m.prompt(f.label + " (" + f.old + "): ")
		if err != nil {
			return err
		}
		*f.dst = v
	}

	_, err = m.roster.Update(id, p)
	switch {
	case err == nil:
		m.println("Student updated successfully!")
	case errors.Is(err, roster.ErrNotFound):
		m.println("Student not found")
	default:
		return err
	}
	return nil
}

func (m *Menu) listStudents() error {
	students, err := m.roster.List()
	if err != nil {
		return err
	}

	m.println("\n--- Student List ---")
	if len(students) == 0 {
		m.println("No students found.")
		return nil
	}
	for _, st := range students {
		m.println(formatStudent(st))
	}
	return nil
}

func (m *Menu) importStudents() error {
	path, err := m.prompt("Spreadsheet to import (.xlsx): ")
	if err != nil {
		return err
	}

	report, err := m.roster.ImportFile(path)
	if err != nil {
		if errors.Is(err, store.ErrCorruptDocument) {
			return err
		}
		m.printf("Import failed: %v\n", err)
		return nil
	}

	m.printf("Imported %d student(s), skipped %d duplicate(s) and %d row(s) without an ID.\n",
		report.Added, report.Duplicates, report.Blank)
	return nil
}

func (m *Menu) exportStudents() error {
	path, err := m.prompt("Export to file (.xlsx): ")
	if err != nil {
		return err
	}

	if err := m.roster.ExportFile(path); err != nil {
		if errors.Is(err, store.ErrCorruptDocument) {
			return err
		}
		m.printf("Export failed: %v\n", err)
		return nil
	}

	m.printf("Roster exported to '%s'.\n", path)
	return nil
}

func formatStudent(st store.Student) string {
	return "ID: " + st.ID + " | Name: " + st.Name + " | Class: " + st.Class +
		" | Age: " + st.Age + " | Score: " + st.Score
}
