// Package main is the entry point for the roster application.
//
// With no arguments it starts the interactive shell: register, log in, and
// manage or view student records depending on the account role. A few
// subcommands cover scripting needs.
//
// Usage:
//
//	roster                  # Interactive shell
//	roster list             # Print the roster
//	roster backup <file>    # Copy the data file
//	roster export <file>    # Write the roster to a spreadsheet
//	roster import <file>    # Add students from a spreadsheet
//	roster help             # Show help
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"student-roster/internal/accounts"
	"student-roster/internal/config"
	"student-roster/internal/menu"
	"student-roster/internal/roster"
	"student-roster/internal/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	log := cfg.NewLogger(stderr)
	st := store.New(cfg.DataFile, log)
	ros := roster.NewService(st, log)

	if len(args) > 0 {
		return runCommand(args, st, ros, stdout, log)
	}

	m := menu.New(stdin, stdout, accounts.NewService(st, log), ros, log)
	if f, ok := stdin.(*os.File); ok {
		m.UseTerminal(int(f.Fd()))
	}
	if err := m.Run(); err != nil {
		log.Error().Err(err).Str("data_file", st.Path()).Msg("aborting")
		return 1
	}
	return 0
}

func runCommand(args []string, st *store.Store, ros *roster.Service, stdout io.Writer, log zerolog.Logger) int {
	switch args[0] {
	case "list":
		students, err := ros.List()
		if err != nil {
			log.Error().Err(err).Msg("could not list students")
			return 1
		}
		if len(students) == 0 {
			fmt.Fprintln(stdout, "No students found.")
			return 0
		}
		fmt.Fprintf(stdout, "%-12s %-20s %-10s %-5s %-6s\n", "ID", "Name", "Class", "Age", "Score")
		for _, s := range students {
			fmt.Fprintf(stdout, "%-12s %-20s %-10s %-5s %-6s\n", s.ID, s.Name, s.Class, s.Age, s.Score)
		}
		return 0

	case "backup":
		if len(args) != 2 {
			fmt.Fprintln(stdout, "Usage: roster backup <file>")
			return 1
		}
		if err := st.Backup(args[1]); err != nil {
			log.Error().Err(err).Msg("backup failed")
			return 1
		}
		fmt.Fprintf(stdout, "Data file backed up to '%s' successfully!\n", args[1])
		return 0

	case "export":
		if len(args) != 2 {
			fmt.Fprintln(stdout, "Usage: roster export <file.xlsx>")
			return 1
		}
		if err := ros.ExportFile(args[1]); err != nil {
			log.Error().Err(err).Msg("export failed")
			return 1
		}
		fmt.Fprintf(stdout, "Roster exported to '%s'.\n", args[1])
		return 0

	case "import":
		if len(args) != 2 {
			fmt.Fprintln(stdout, "Usage: roster import <file.xlsx>")
			return 1
		}
		report, err := ros.ImportFile(args[1])
		if err != nil {
			log.Error().Err(err).Msg("import failed")
			return 1
		}
		fmt.Fprintf(stdout, "Imported %d student(s), skipped %d duplicate(s) and %d row(s) without an ID.\n",
			report.Added, report.Duplicates, report.Blank)
		return 0

	case "help", "-h", "--help":
		printUsage(stdout)
		return 0

	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n", args[0])
		printUsage(stdout)
		return 1
	}
}

// printUsage prints usage information for the roster CLI.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Roster - Student Management System

Usage:
  roster                   - Start the interactive shell
  roster list              - List all students
  roster backup <file>     - Back up the data file
  roster export <file>     - Export students to an .xlsx spreadsheet
  roster import <file>     - Import students from an .xlsx spreadsheet
  roster help              - Show this help

Environment:
  ROSTER_DATA_FILE         - Data file path (default: data.json)
  ROSTER_LOG_LEVEL         - Log level: debug, info, warn, error (default: warn)

Examples:
  roster export roster.xlsx
  ROSTER_DATA_FILE=/srv/school/data.json roster list`)
}
