package logger

import (
	"go.uber.org/zap"
)

// L is the process-wide logger. It defaults to a no-op logger so packages can
// log safely before Init runs (e.g. in tests).
var L = zap.NewNop()

// Init builds the logger for the given environment and installs it globally.
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	L = l
	zap.ReplaceGlobals(l)
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = L.Sync()
}
