package shutdown

import (
	"os"
	"os/signal"

	"go.uber.org/atomic"
)

// Signal is the process-wide request to stop serving.
// It starts lowered and, once raised, stays raised for the rest of the run.
// It is safe to raise and observe from any goroutine.
type Signal struct {
	raised *atomic.Bool
	cause  *atomic.String
	done   chan struct{}
}

func New() *Signal {
	return &Signal{
		raised: atomic.NewBool(false),
		cause:  atomic.NewString(""),
		done:   make(chan struct{}),
	}
}

// Raise sets the flag and wakes up everything waiting on Done.
func (s *Signal) Raise() {
	if !s.raised.Swap(true) {
		close(s.done)
	}
}

// Raised reports whether shutdown has been requested.
func (s *Signal) Raised() bool {
	return s.raised.Load()
}

// Done is closed when the signal is raised.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Cause returns the name of the OS signal that raised s, or "" when s was
// raised by the program itself (or not at all).
func (s *Signal) Cause() string {
	return s.cause.Load()
}

// Notify raises s on delivery of any of sigs, Interrupt and Terminate if none given.
// The delivery goroutine never does I/O: it only records which signal arrived.
// The returned function stops the notification.
func (s *Signal) Notify(sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		sigs = Signals
	}
	c := make(chan os.Signal, 1)
	quit := make(chan struct{})
	signal.Notify(c, sigs...)
	go func() {
		select {
		case sig := <-c:
			s.cause.Store(sig.String())
			s.Raise()
		case <-quit:
		}
	}()
	return func() {
		signal.Stop(c)
		close(quit)
	}
}
