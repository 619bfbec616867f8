package log

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// Verbosity levels understood by GetLogger. A cuckoo table logs failed
// insertions at DebugLevel and every displacement at TraceLevel.
const (
	InfoLevel = iota
	DebugLevel
	TraceLevel
)

// GetLogger returns a stdr backed logr.Logger named "cuckoo" and sets the
// global stdr verbosity to v. Anything outside InfoLevel..TraceLevel falls
// back to InfoLevel.
func GetLogger(v int) logr.Logger {
	logger := stdr.New(nil).WithName("cuckoo")
	if v > TraceLevel || v < InfoLevel {
		v = InfoLevel
		logger.Info("Invalid verbosity, setting logger to display info level messages only.")
	}
	stdr.SetVerbosity(v)

	return logger
}

// ContextWithLogger stores logger in ctx for the driver and the tables it builds.
func ContextWithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// GetLoggerFromContextWithName returns the logger carried by ctx, or an
// InfoLevel logger when there is none, named name when name is not empty.
func GetLoggerFromContextWithName(ctx context.Context, name string) logr.Logger {
	logger, err := logr.FromContext(ctx)
	if err != nil {
		logger = GetLogger(InfoLevel)
	}

	if name != "" {
		return logger.WithName(name)
	}
	return logger
}
