package sock

import (
	"net"
	"os"
	"syscall"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elastic/daytimed/shutdown"
	"github.com/elastic/daytimed/status"
)

type memLog struct {
	records []string
}

func (m *memLog) Record(message string) {
	m.records = append(m.records, message)
}

func open(t *testing.T, port int) (*Listener, *memLog, *shutdown.Signal, error) {
	log := &memLog{}
	sig := shutdown.New()
	c := status.NewClassifier(log, zap.NewNop().Sugar(), sig, true)
	l, err := Open(port, 5, c, sig)
	if l != nil {
		t.Cleanup(func() { l.Close() })
	}
	return l, log, sig, err
}

func dial(t *testing.T, l *Listener) net.Conn {
	conn, err := net.Dial("tcp4", "127.0.0.1:"+strconv.Itoa(l.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestOpen(t *testing.T) {
	l, log, sig, err := open(t, 0)
	require.NoError(t, err)
	assert.NotZero(t, l.Port())
	assert.False(t, sig.Raised())
	assert.Equal(t, []string{
		"Socket Assign SUCCESS",
		"Socket Bind SUCCESS",
		"Socket Listen SUCCESS",
	}, log.records)

	client := dial(t, l)
	conn, err := l.Accept()
	require.NoError(t, err)
	defer conn.Close()

	_, err = client.Write([]byte("date"))
	require.NoError(t, err)
	b := make([]byte, 4)
	_, err = conn.Read(b)
	require.NoError(t, err)
	assert.Equal(t, "date", string(b))
}

func TestOpenPortInUse(t *testing.T) {
	l, _, _, err := open(t, 0)
	require.NoError(t, err)

	_, log, sig, err := open(t, l.Port())
	require.Error(t, err)
	assert.Equal(t, status.Resource, status.KindOf(err))
	assert.Contains(t, err.Error(), "Socket Bind")
	assert.True(t, sig.Raised())
	assert.Equal(t, []string{"Socket Assign SUCCESS", "Socket Bind FAILED"}, log.records)
}

func TestFailedStep(t *testing.T) {
	for _, test := range []struct {
		syscall string
		step    status.Tag
	}{
		{"socket", status.SocketAssign},
		{"setsockopt", status.SocketBind},
		{"bind", status.SocketBind},
		{"listen", status.SocketListen},
	} {
		err := &net.OpError{Op: "listen", Net: "tcp4", Err: os.NewSyscallError(test.syscall, syscall.EINVAL)}
		assert.Equal(t, test.step, failedStep(err), test.syscall)
	}
	assert.Equal(t, status.SocketListen, failedStep(syscall.EINVAL))
}

func TestOneConnectionAtATime(t *testing.T) {
	l, _, _, err := open(t, 0)
	require.NoError(t, err)

	dial(t, l)
	first, err := l.Accept()
	require.NoError(t, err)

	dial(t, l)
	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := l.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	select {
	case <-accepted:
		t.Fatal("second connection accepted while the first is open")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, first.Close())
	select {
	case conn := <-accepted:
		conn.Close()
	case <-time.After(5 * time.Second):
		t.Fatal("second connection never accepted")
	}
}

func TestAcceptInterrupted(t *testing.T) {
	l, _, sig, err := open(t, 0)
	require.NoError(t, err)

	errs := make(chan error, 1)
	go func() {
		_, err := l.Accept()
		errs <- err
	}()

	time.Sleep(100 * time.Millisecond)
	sig.Raise()
	require.NoError(t, l.Close())

	select {
	case err := <-errs:
		assert.Equal(t, ErrInterrupted, err)
	case <-time.After(5 * time.Second):
		t.Fatal("accept not interrupted")
	}

	_, err = l.Accept()
	assert.Equal(t, ErrInterrupted, err)
	// closing again reports the first outcome
	assert.NoError(t, l.Close())
}
