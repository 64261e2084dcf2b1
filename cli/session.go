package cli

import (
	"net"
	"time"

	"github.com/elastic/daytimed/agent"
	"github.com/elastic/daytimed/conv"
	"github.com/elastic/daytimed/out"
	"github.com/elastic/daytimed/status"
)

// Messages sent to clients.
const (
	greetingMsg      = "Enter date, time, or done.\n"
	disconnectingMsg = "Disconnecting...\n"
	invalidMsg       = "Text entered was invalid.\nPlease enter 'date','time',or 'done'.\n"
)

type state int

const (
	greeting state = iota
	awaitingCommand
	responding
	closed
)

// session runs the command protocol over one accepted connection.
type session struct {
	*Server
	conn  net.Conn
	buf   []byte
	trace *agent.Session

	cmd   command
	reply string
	// ends the span of cmd, once its reply is sent
	endCmd func()
	// how the session ended, as reported to the tracer
	outcome string
}

func newSession(s *Server, conn net.Conn) *session {
	return &session{
		Server:  s,
		conn:    conn,
		buf:     make([]byte, s.readBuffer),
		trace:   s.tracer.StartSession(conn.RemoteAddr().String()),
		outcome: "shutdown",
	}
}

// run greets the client and answers its commands until it is done, the
// connection fails or shutdown is requested. The connection is always closed.
func (s *session) run() {
	stop := s.interruptOnShutdown()
	for st := greeting; st != closed && !s.shutdown.Raised(); {
		switch st {
		case greeting:
			st = s.send(greetingMsg, awaitingCommand)
		case awaitingCommand:
			st = s.await()
		case responding:
			next := awaitingCommand
			if s.cmd == doneCmd {
				next = closed
			}
			st = s.send(s.reply, next)
			s.endCommand()
		}
	}
	stop()
	s.close()
}

// interruptOnShutdown makes blocked reads and writes on the connection
// return as soon as the shutdown signal is raised.
func (s *session) interruptOnShutdown() (stop func()) {
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-s.shutdown.Done():
			s.conn.SetDeadline(time.Unix(1, 0))
		case <-quit:
		}
	}()
	return func() {
		close(quit)
		<-done
	}
}

func (s *session) await() state {
	n, err := s.conn.Read(s.buf)
	if s.shutdown.Raised() {
		// an interrupted wait is not a failure
		return closed
	}
	if !s.classifier.Classify(err, status.BufferRead) {
		s.outcome = "read error"
		return closed
	}
	s.cmd = read(s.buf[:n])
	s.endCmd = s.trace.Command(s.cmd.String())
	s.reply = s.respond(s.cmd)
	return responding
}

func (s *session) respond(cmd command) string {
	switch cmd {
	case dateCmd:
		s.log.Record("Client requested date")
		return "System date: " + conv.Date(s.now()) + " \n"
	case timeCmd:
		s.log.Record("Client requested time")
		return "System time: " + conv.Time(s.now()) + " \n"
	case doneCmd:
		s.outcome = "done"
		return disconnectingMsg
	}
	return invalidMsg
}

func (s *session) send(msg string, next state) state {
	err := out.Reply(s.conn, msg)
	if err != nil && s.shutdown.Raised() {
		return closed
	}
	if !s.classifier.Classify(err, status.BufferWrite) {
		s.outcome = "write error"
		return closed
	}
	return next
}

func (s *session) endCommand() {
	if s.endCmd != nil {
		s.endCmd()
		s.endCmd = nil
	}
}

func (s *session) close() {
	s.endCommand()
	err := s.conn.Close()
	if err == nil {
		s.console.Info("Client disconnected...")
	}
	s.classifier.Classify(err, status.ClientClose)
	s.trace.End(s.outcome)
}
