// Package config layers built-in defaults, an optional config file and
// LLAMA_* environment variables underneath the command line.
package config

import (
	"log/slog"

	"github.com/computerscienceiscool/llama-cli/internal/params"
)

// Settings is everything resolved before argv is scanned
type Settings struct {
	// Params holds the defaults the command line starts from.
	Params params.Params

	LogLevel   slog.Level
	LogFormat  string
	StrictExit bool

	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string
}
