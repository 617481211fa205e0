package menu

import (
	"github.com/pkg/errors"

	"student-roster/internal/roster"
)

// studentLoop serves a logged-in student; every lookup is bound to studentID.
func (m *Menu) studentLoop(studentID string) error {
	for {
		m.println("\n--- Student Menu ---")
		m.println("1. View my information")
		m.println("2. Exit")

		choice, err := m.prompt("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			st, err := m.roster.Get(studentID)
			if errors.Is(err, roster.ErrNotFound) {
				m.println("Student record not found!")
				continue
			}
			if err != nil {
				return err
			}

			m.println("\n--- My Information ---")
			m.printf("ID: %s\n", st.ID)
			m.printf("Name: %s\n", st.Name)
			m.printf("Class: %s\n", st.Class)
			m.printf("Age: %s\n", st.Age)
			m.printf("Score: %s\n", st.Score)
		case "2":
			return nil
		default:
			m.println("Invalid option!")
		}
	}
}
