package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	once.Do(func() {
		l := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "patchview 🫖 ",
		})
		l.SetLevel(log.InfoLevel)
		// The Log* wrappers add a frame on top of the call site.
		l.SetCallerOffset(1)
		singleton = &logger{l}
	})
	return singleton
}

// SetLogLevel parses level ("debug", "info", "warn", "error", "fatal") and applies
// it to the engine logger. Unknown levels fall back to info and are reported.
func SetLogLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		getLogger().Warnf("unknown log level %q, using info", level)
		lvl = log.InfoLevel
	}
	getLogger().SetLevel(lvl)
}

// LogLevel returns the current level name.
func LogLevel() string {
	return getLogger().GetLevel().String()
}

// SetLogOutput redirects the engine logger, mostly for tests.
func SetLogOutput(w io.Writer) {
	getLogger().SetOutput(w)
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
