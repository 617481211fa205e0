package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-roster/internal/config"
	"student-roster/internal/store"
)

func setup(t *testing.T, doc *store.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	t.Setenv(config.EnvDataFile, path)
	t.Setenv(config.EnvLogLevel, "disabled")
	if doc != nil {
		require.NoError(t, store.New(path, zerolog.Nop()).Save(doc))
	}
	return path
}

func invoke(args ...string) (int, string) {
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(""), &out, &errOut)
	return code, out.String()
}

func TestRun_Help(t *testing.T) {
	setup(t, nil)

	code, out := invoke("help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "roster export <file>")
}

func TestRun_UnknownCommand(t *testing.T) {
	setup(t, nil)

	code, out := invoke("frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestRun_List(t *testing.T) {
	setup(t, &store.Document{Students: []store.Student{{ID: "1", Name: "A", Class: "C1", Age: "20", Score: "90"}}})

	code, out := invoke("list")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "ID")
	assert.Regexp(t, `1\s+A\s+C1\s+20\s+90`, out)
}

func TestRun_ListEmpty(t *testing.T) {
	setup(t, nil)

	code, out := invoke("list")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No students found.")
}

func TestRun_Backup(t *testing.T) {
	path := setup(t, &store.Document{Students: []store.Student{{ID: "1"}}})
	dst := filepath.Join(t.TempDir(), "copy.json")

	code, _ := invoke("backup", dst)
	require.Equal(t, 0, code)

	a, err := os.ReadFile(path)
	require.NoError(t, err)
	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	code, out := invoke("backup")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Usage: roster backup <file>")
}

func TestRun_ExportThenImport(t *testing.T) {
	setup(t, &store.Document{Students: []store.Student{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}})
	xlsx := filepath.Join(t.TempDir(), "roster.xlsx")

	code, _ := invoke("export", xlsx)
	require.Equal(t, 0, code)

	target := setup(t, nil)
	code, out := invoke("import", xlsx)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Imported 2 student(s)")

	doc, err := store.New(target, zerolog.Nop()).Load()
	require.NoError(t, err)
	assert.Len(t, doc.Students, 2)
}

func TestRun_CorruptDataFile(t *testing.T) {
	path := setup(t, nil)
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0600))

	code, _ := invoke("list")
	assert.Equal(t, 1, code)
}

func TestRun_InteractiveExit(t *testing.T) {
	setup(t, nil)

	var out, errOut bytes.Buffer
	code := run(nil, strings.NewReader("3\n"), &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "goodbye")
}

func TestRun_InvalidLogLevel(t *testing.T) {
	setup(t, nil)
	t.Setenv(config.EnvLogLevel, "shouty")

	code, _ := invoke("list")
	assert.Equal(t, 1, code)
}
