package fileio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/elastic/daytimed/conv"
)

// ActivityLog appends timestamped records to a text file.
// The file is opened and closed for every record, so that records survive
// a crash and the file can be rotated away while the server runs.
// Failing to write a record is reported to the operator and otherwise ignored.
type ActivityLog struct {
	path   string
	logger *zap.SugaredLogger
	now    func() time.Time
	// serializes records, keeping them in invocation order
	mu sync.Mutex
}

func NewActivityLog(path string, logger *zap.SugaredLogger) *ActivityLog {
	return &ActivityLog{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

func (l *ActivityLog) Path() string {
	return l.path
}

// Record appends "<date> <time> - <message>" as a new line.
func (l *ActivityLog) Record(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		l.logger.Errorw("File did not open", "path", l.path, "err", err)
		return
	}
	if _, err = fmt.Fprintf(f, "%s - %s\n", conv.Stamp(l.now()), message); err != nil {
		l.logger.Errorw("File write failed", "path", l.path, "err", err)
	}
	if err = f.Close(); err != nil {
		l.logger.Errorw("File failed to close", "path", l.path, "err", err)
	}
}
