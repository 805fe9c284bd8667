package core

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	once      sync.Once
	singleton *log.Logger
)

// SessionID identifies one run of the demo in every log line.
var SessionID = uuid.NewString()

// Logger returns the process logger, creating it on first use.
func Logger() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "deferred",
		}).With("session", SessionID[:8])
		singleton.SetLevel(log.InfoLevel)
	})
	return singleton
}

// SetDebug switches the process logger between info and debug level.
func SetDebug(enabled bool) {
	if enabled {
		Logger().SetLevel(log.DebugLevel)
		return
	}
	Logger().SetLevel(log.InfoLevel)
}

func LogDebug(msg string, args ...interface{}) {
	Logger().Debug(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	Logger().Info(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	Logger().Warn(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	Logger().Error(msg, args...)
}
