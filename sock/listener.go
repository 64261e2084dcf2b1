package sock

import (
	"net"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/netutil"

	"github.com/elastic/daytimed/shutdown"
	"github.com/elastic/daytimed/status"
)

// ErrInterrupted is returned by Accept when shutdown was requested while waiting.
// It is not a failure.
var ErrInterrupted = errors.New("accept interrupted by shutdown")

// Classifier records the outcome of every step of opening a socket.
type Classifier interface {
	Classify(err error, tag status.Tag) bool
}

// setupSteps are the steps of opening a socket, in order.
var setupSteps = []status.Tag{status.SocketAssign, status.SocketBind, status.SocketListen}

// failedStep tells which setup step err comes from, by the system call that failed.
func failedStep(err error) status.Tag {
	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) {
		switch sysErr.Syscall {
		case "socket":
			return status.SocketAssign
		case "bind", "setsockopt":
			return status.SocketBind
		}
	}
	return status.SocketListen
}

// Listener owns the listening socket.
// It hands out at most one live connection at a time: Accept blocks until
// the previously accepted connection is closed.
type Listener struct {
	net.Listener
	shutdown *shutdown.Signal

	closeOnce sync.Once
	closeErr  error
}

// Open creates a stream socket bound to all local interfaces on port, and
// listening with the given backlog.
// Every step is reported to c; the returned error is tagged with the failing step.
func Open(port, backlog int, c Classifier, sig *shutdown.Signal) (*Listener, error) {
	l, err := listen(port, backlog, c)
	if err != nil {
		return nil, err
	}
	return &Listener{
		Listener: netutil.LimitListener(l, 1),
		shutdown: sig,
	}, nil
}

// Accept waits for the next connection.
// It returns ErrInterrupted if the shutdown signal is raised before or while waiting,
// provided that the listener is closed on shutdown so that the wait ends.
func (l *Listener) Accept() (net.Conn, error) {
	if l.shutdown.Raised() {
		return nil, ErrInterrupted
	}
	conn, err := l.Listener.Accept()
	if l.shutdown.Raised() {
		if conn != nil {
			conn.Close()
		}
		return nil, ErrInterrupted
	}
	return conn, err
}

// Close closes the socket once; later calls return the result of the first one.
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.Listener.Close()
	})
	return l.closeErr
}

// Port is the port the socket is bound to.
func (l *Listener) Port() int {
	if addr, ok := l.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}
