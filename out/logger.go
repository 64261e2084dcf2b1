package out

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns the diagnostics logger, writing human readable lines to w.
// Levels are coloured if colored is true, typically when w is a terminal.
func NewLogger(w zapcore.WriteSyncer, colored bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	if colored {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), w, zapcore.InfoLevel)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// ApmLogger adapts the diagnostics logger to the logger interface of the APM agent.
type ApmLogger struct {
	*zap.SugaredLogger
}

func (l *ApmLogger) Debugf(format string, args ...interface{}) {
	l.SugaredLogger.Debugf(format, args...)
}

func (l *ApmLogger) Errorf(format string, args ...interface{}) {
	l.SugaredLogger.Errorf(format, args...)
}

func NewApmLogger(logger *zap.SugaredLogger) *ApmLogger {
	return &ApmLogger{
		SugaredLogger: logger.Named("apm"),
	}
}
