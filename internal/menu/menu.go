// Package menu provides the interactive terminal front end of the roster.
//
// Three loops are driven from a single line reader:
//   - the top-level loop (register, login, exit)
//   - the teacher loop (roster maintenance)
//   - the student loop (view own record)
//
// Every choice runs one operation synchronously and then redraws the menu.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"student-roster/internal/accounts"
	"student-roster/internal/roster"
	"student-roster/internal/store"
)

// Menu runs the interactive loops over an input and an output stream.
type Menu struct {
	in         *bufio.Reader
	out        io.Writer
	accounts   *accounts.Service
	roster     *roster.Service
	log        zerolog.Logger
	readSecret func() (string, error)
}

// New creates a menu reading choices from in and writing prompts to out.
func New(in io.Reader, out io.Writer, acc *accounts.Service, ros *roster.Service, log zerolog.Logger) *Menu {
	return &Menu{
		in:       bufio.NewReader(in),
		out:      out,
		accounts: acc,
		roster:   ros,
		log:      log.With().Str("component", "menu").Logger(),
	}
}

// UseTerminal makes password prompts read from the terminal at fd with echo disabled.
// It has no effect when fd is not a terminal.
func (m *Menu) UseTerminal(fd int) {
	if !term.IsTerminal(fd) {
		return
	}
	m.readSecret = func() (string, error) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(m.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
}

// Run drives the top-level loop until the user exits or input ends.
// It returns an error only when an operation fails in a way the user cannot fix,
// such as an unreadable data file.
func (m *Menu) Run() error {
	err := m.mainLoop()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(m.out)
		return nil
	}
	return err
}

func (m *Menu) mainLoop() error {
	for {
		m.println("\n=== Student Management System ===")
		m.println("1. Register")
		m.println("2. Login")
		m.println("3. Exit")

		choice, err := m.prompt("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := m.register(); err != nil {
				return err
			}
		case "2":
			if err := m.login(); err != nil {
				return err
			}
		case "3":
			m.println("Thanks for using the system, goodbye!")
			return nil
		default:
			m.println("Invalid option!")
		}
	}
}

func (m *Menu) register() error {
	m.println("\n--- Register ---")

	username, err := m.prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := m.secret("Password: ")
	if err != nil {
		return err
	}
	role, err := m.prompt("Role (teacher/student): ")
	if err != nil {
		return err
	}

	req := accounts.RegisterRequest{Username: username, Password: password, Role: role}
	if r, ok := store.ParseRole(role); ok && r == store.RoleStudent {
		if req.StudentID, err = m.prompt("Your student ID: "); err != nil {
			return err
		}
	}

	_, err = m.accounts.Register(req)
	switch {
	case err == nil:
		m.println("Registration successful!")
	case errors.Is(err, accounts.ErrUsernameTaken):
		m.println("Username already exists!")
	case errors.Is(err, accounts.ErrUnknownStudent):
		m.println("That student ID does not exist, ask a teacher to add you first!")
	case errors.Is(err, accounts.ErrInvalidRole):
		m.println("Role must be teacher or student!")
	case errors.Is(err, accounts.ErrEmptyUsername):
		m.println("Username cannot be empty!")
	default:
		return err
	}
	return nil
}

func (m *Menu) login() error {
	m.println("\n--- Login ---")

	username, err := m.prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := m.secret("Password: ")
	if err != nil {
		return err
	}

	user, err := m.accounts.Login(username, password)
	if errors.Is(err, accounts.ErrInvalidCredentials) {
		m.println("Invalid username or password!")
		return nil
	}
	if err != nil {
		return err
	}

	m.printf("Login successful! Welcome %s (%s)\n", user.Username, user.Role)

	if user.Role == store.RoleTeacher {
		return m.teacherLoop()
	}

	var studentID string
	if user.StudentID != nil {
		studentID = *user.StudentID
	}
	return m.studentLoop(studentID)
}

// prompt prints label and reads one trimmed line. A final line without a
// newline is still returned; io.EOF is reported only when nothing was read.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)

	line, err := m.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// secret reads a password, without echo when a terminal is attached.
func (m *Menu) secret(label string) (string, error) {
	if m.readSecret == nil {
		return m.prompt(label)
	}
	fmt.Fprint(m.out, label)
	return m.readSecret()
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}
