package cli

import (
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/elastic/daytimed/agent"
	"github.com/elastic/daytimed/out"
	"github.com/elastic/daytimed/shutdown"
	"github.com/elastic/daytimed/sock"
	"github.com/elastic/daytimed/status"
)

const defaultReadBuffer = 254

// Acceptor hands out client connections.
// Once the shutdown signal is raised, Accept must return sock.ErrInterrupted
// and Close must make a pending Accept return.
type Acceptor interface {
	Accept() (net.Conn, error)
	Close() error
}

// Server answers date and time queries, one client at a time.
type Server struct {
	listener   Acceptor
	shutdown   *shutdown.Signal
	classifier *status.Classifier
	log        status.Recorder
	console    *out.Console
	tracer     *agent.Tracer
	readBuffer int
	now        func() time.Time
}

func NewServer(l Acceptor, sig *shutdown.Signal, c *status.Classifier, log status.Recorder, console *out.Console) *Server {
	return &Server{
		listener:   l,
		shutdown:   sig,
		classifier: c,
		log:        log,
		console:    console,
		readBuffer: defaultReadBuffer,
		now:        time.Now,
	}
}

// WithTracer reports every session to t.
func (s *Server) WithTracer(t *agent.Tracer) *Server {
	s.tracer = t
	return s
}

// WithReadBuffer sets the maximum number of bytes read per command.
func (s *Server) WithReadBuffer(n int) *Server {
	if n >= tokenLen {
		s.readBuffer = n
	}
	return s
}

// Serve accepts connections and runs their sessions one after the other,
// until the shutdown signal is raised.
// The listener is closed when that happens, closing it again is up to the caller.
// It returns the accept failure that stopped the server, if any.
func (s *Server) Serve() error {
	var g errgroup.Group
	stopped := make(chan struct{})
	g.Go(func() error {
		select {
		case <-s.shutdown.Done():
			s.listener.Close()
		case <-stopped:
		}
		return nil
	})
	g.Go(func() error {
		defer close(stopped)
		return s.loop()
	})
	return g.Wait()
}

func (s *Server) loop() error {
	for !s.shutdown.Raised() {
		conn, err := s.listener.Accept()
		if err == sock.ErrInterrupted {
			return nil
		}
		if err == nil {
			s.console.Info("Client connected...")
		}
		if !s.classifier.Classify(err, status.ClientConnection) {
			// accept failures always raise the shutdown signal
			return status.Wrap(err, status.ClientConnection)
		}
		newSession(s, conn).run()
	}
	return nil
}
