// Package config resolves runtime settings for the roster tool.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"student-roster/internal/store"
)

const (
	// EnvDataFile overrides the data file path.
	EnvDataFile = "ROSTER_DATA_FILE"
	// EnvLogLevel sets the diagnostic log level (debug, info, warn, error, disabled).
	EnvLogLevel = "ROSTER_LOG_LEVEL"

	DefaultLogLevel = zerolog.WarnLevel
)

// Config holds the settings of one run.
type Config struct {
	DataFile string
	LogLevel zerolog.Level
}

// Load reads the configuration from the environment. Unset variables fall back
// to "data.json" in the working directory and warn-level logging.
func Load() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		DataFile: store.DefaultPath,
		LogLevel: DefaultLogLevel,
	}

	if v, ok := lookup(EnvDataFile); ok && strings.TrimSpace(v) != "" {
		cfg.DataFile = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid %s", EnvLogLevel)
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

// NewLogger builds the process logger. Output is human-readable console text.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(c.LogLevel).
		With().
		Timestamp().
		Logger()
}
