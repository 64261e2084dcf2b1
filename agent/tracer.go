package agent

import (
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.elastic.co/apm"
	apmtransport "go.elastic.co/apm/transport"
)

const flushTimeout = 5 * time.Second

// Tracer reports client sessions to an APM Server.
// A nil *Tracer is valid and traces nothing.
type Tracer struct {
	*apm.Tracer
}

// NewTracer returns a tracer sending to serverUrl.
func NewTracer(logger apm.Logger, serverUrl, serverSecret, serviceName string) (*Tracer, error) {
	u, err := url.Parse(serverUrl)
	if err != nil {
		return nil, errors.Wrap(err, "parsing apm server url")
	}
	// ensure that tracer instances do not share the same transport instance
	transport, err := apmtransport.NewHTTPTransport()
	if err != nil {
		return nil, errors.Wrap(err, "creating apm transport")
	}
	transport.SetServerURL(u)
	transport.SetUserAgent("daytimed")
	if serverSecret != "" {
		transport.SetSecretToken(serverSecret)
	}

	goTracer, err := apm.NewTracerOptions(apm.TracerOptions{
		ServiceName: serviceName,
		Transport:   transport,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating apm tracer")
	}
	goTracer.SetLogger(logger)
	goTracer.SetMetricsInterval(0) // disable metrics
	return &Tracer{goTracer}, nil
}

// StartSession starts a transaction covering one client connection.
func (t *Tracer) StartSession(remoteAddr string) *Session {
	if t == nil {
		return nil
	}
	tx := t.StartTransaction("session", "tcp")
	tx.Context.SetLabel("remote_addr", remoteAddr)
	return &Session{tx: tx}
}

// Close flushes buffered events, giving up after a while, and stops the tracer.
func (t *Tracer) Close() {
	if t == nil {
		return
	}
	abort := make(chan struct{})
	timer := time.AfterFunc(flushTimeout, func() { close(abort) })
	t.Flush(abort)
	timer.Stop()
	t.Tracer.Close()
}

// Session is the transaction of one client connection.
// A nil *Session is valid and traces nothing.
type Session struct {
	tx *apm.Transaction
}

// Command starts a span for one command, the returned function ends it.
func (s *Session) Command(name string) (end func()) {
	if s == nil {
		return func() {}
	}
	span := s.tx.StartSpan(name, "command", nil)
	return span.End
}

// End closes the transaction with result as outcome.
func (s *Session) End(result string) {
	if s == nil {
		return
	}
	s.tx.Result = result
	s.tx.End()
}
