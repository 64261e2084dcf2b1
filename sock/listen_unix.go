//go:build unix

package sock

import (
	"fmt"
	"net"
	"os"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"

	"github.com/elastic/daytimed/status"
)

// listen goes through socket(2), bind(2) and listen(2) one at a time,
// the net package doesn't allow to choose the backlog.
func listen(port, backlog int, c Classifier) (net.Listener, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if !c.Classify(err, status.SocketAssign) {
		return nil, status.Wrap(err, status.SocketAssign)
	}
	unix.CloseOnExec(fd)

	if err = bind(fd, port); err != nil {
		err = multierr.Append(err, os.NewSyscallError("close", unix.Close(fd)))
	}
	if !c.Classify(err, status.SocketBind) {
		return nil, status.Wrap(err, status.SocketBind)
	}

	var l net.Listener
	if err = unix.Listen(fd, backlog); err != nil {
		err = multierr.Append(os.NewSyscallError("listen", err), os.NewSyscallError("close", unix.Close(fd)))
	} else {
		l, err = fileListener(fd, port)
	}
	if !c.Classify(err, status.SocketListen) {
		return nil, status.Wrap(err, status.SocketListen)
	}
	return l, nil
}

func bind(fd, port int) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return os.NewSyscallError("setsockopt", err)
	}
	// zero address is INADDR_ANY
	return os.NewSyscallError("bind", unix.Bind(fd, &unix.SockaddrInet4{Port: port}))
}

// fileListener hands fd over to the runtime network poller. fd is always consumed.
func fileListener(fd, port int) (net.Listener, error) {
	f := os.NewFile(uintptr(fd), fmt.Sprintf("tcp4:*:%d", port))
	defer f.Close()
	return net.FileListener(f)
}
