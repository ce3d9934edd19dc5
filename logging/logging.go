// Zerolog setup for the Go host.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"io"
	"os"
	"time"
)

// Setup configures zerolog with sane defaults. level is a zerolog level name; unknown
// names fall back to info. console selects the human-readable writer.
func Setup(level string, console bool) {
	SetupWriter(os.Stdout, level, console)
}

// SetupWriter is Setup with an explicit output.
func SetupWriter(out io.Writer, level string, console bool) {
	// Timestamp format
	zerolog.TimeFieldFormat = time.RFC3339

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	if console {
		out = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = out
			w.TimeFormat = time.RFC3339
			w.NoColor = true
		})
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
