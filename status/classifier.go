package status

import (
	"go.uber.org/zap"

	"github.com/elastic/daytimed/shutdown"
)

// Recorder appends a message to the activity log.
type Recorder interface {
	Record(message string)
}

// Classifier turns the outcome of an operation into an activity log record
// and, on failure, into an operator diagnostic and a shutdown request.
type Classifier struct {
	log      Recorder
	logger   *zap.SugaredLogger
	shutdown *shutdown.Signal
	// if false, failures of session scoped operations end only that session
	sessionErrorsFatal bool
}

func NewClassifier(log Recorder, logger *zap.SugaredLogger, sig *shutdown.Signal, sessionErrorsFatal bool) *Classifier {
	return &Classifier{
		log:                log,
		logger:             logger,
		shutdown:           sig,
		sessionErrorsFatal: sessionErrorsFatal,
	}
}

// Classify records "<tag> SUCCESS" if err is nil and returns true.
// Otherwise it records "<tag> FAILED", reports err to the operator, raises
// the shutdown signal and returns false.
func (c *Classifier) Classify(err error, tag Tag) bool {
	if err == nil {
		c.log.Record(tag.String() + " SUCCESS")
		return true
	}
	msg := tag.String() + " FAILED"
	c.logger.Errorw(msg, "kind", tag.Kind(), "err", err)
	c.log.Record(msg)
	if c.sessionErrorsFatal || !tag.SessionScoped() {
		c.shutdown.Raise()
	}
	return false
}
