package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/elastic/daytimed/out"
)

// newLogger returns the diagnostics logger, writing to stderr.
func newLogger() *zap.SugaredLogger {
	return out.NewLogger(zapcore.Lock(os.Stderr), isatty.IsTerminal(os.Stderr.Fd()))
}
