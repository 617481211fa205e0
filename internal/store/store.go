package store

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// DefaultPath is the data file used when no path is configured.
const DefaultPath = "data.json"

// ErrCorruptDocument is returned by Load when the data file is not a roster document.
var ErrCorruptDocument = errors.New("data file is not a valid roster document")

// Store reads and writes the roster document as a single JSON file.
type Store struct {
	path string
	log  zerolog.Logger
}

// New creates a store backed by the file at path.
// If path is empty, it uses "data.json" in the current directory.
func New(path string, log zerolog.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}

	return &Store{
		path: path,
		log:  log.With().Str("component", "store").Logger(),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole document from disk. A missing file yields an empty document.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug().Str("path", s.path).Msg("data file not found, starting empty")
			return NewDocument(), nil
		}
		return nil, errors.Wrapf(err, "could not read data file %s", s.path)
	}

	if err := probe(data); err != nil {
		return nil, errors.Wrapf(err, "could not load %s", s.path)
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrapf(ErrCorruptDocument, "could not decode %s: %v", s.path, err)
	}
	doc.normalize()

	s.log.Debug().
		Int("users", len(doc.Users)).
		Int("students", len(doc.Students)).
		Msg("document loaded")

	return doc, nil
}

// probe checks the raw bytes before decoding: the root must be an object and
// the two collections, when present, must be lists.
func probe(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.Wrap(ErrCorruptDocument, "invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return errors.Wrap(ErrCorruptDocument, "top level is not an object")
	}

	for _, key := range []string{"users", "students"} {
		v := root.Get(key)
		if v.Exists() && v.Type != gjson.Null && !v.IsArray() {
			return errors.Wrapf(ErrCorruptDocument, "%q is not a list", key)
		}
	}

	return nil
}

// Save writes the whole document to disk, replacing the previous content.
func (s *Store) Save(doc *Document) error {
	data, err := encode(doc)
	if err != nil {
		return errors.Wrap(err, "could not encode document")
	}

	// Write to temporary file first, then rename for atomic operation
	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return errors.Wrapf(err, "could not write %s", tempFile)
	}

	if err := os.Rename(tempFile, s.path); err != nil {
		os.Remove(tempFile)
		return errors.Wrapf(err, "could not replace %s", s.path)
	}

	s.log.Debug().
		Int("users", len(doc.Users)).
		Int("students", len(doc.Students)).
		Int("bytes", len(data)).
		Msg("document saved")

	return nil
}

// encode renders the document with 4-space indentation. HTML characters and
// non-ASCII text are written as-is and there is no trailing newline.
func encode(doc *Document) ([]byte, error) {
	doc.normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Backup copies the current data file to backupPath.
func (s *Store) Backup(backupPath string) error {
	sourceFile, err := os.Open(s.path)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", s.path)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(backupPath)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", backupPath)
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return errors.Wrapf(err, "could not copy %s to %s", s.path, backupPath)
	}

	if err := destFile.Close(); err != nil {
		return errors.Wrapf(err, "could not close %s", backupPath)
	}

	s.log.Info().Str("backup", backupPath).Msg("data file backed up")
	return nil
}
