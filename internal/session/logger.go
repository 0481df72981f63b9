package session

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns the structured logger used by sessions and the server.
// An unknown level falls back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders",
		Level:           lvl,
	})
}
