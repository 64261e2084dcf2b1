package status

// Tag names a fallible operation whose outcome is recorded in the activity log.
type Tag int

const (
	Port Tag = iota
	SocketAssign
	SocketBind
	SocketListen
	SocketClose
	ClientConnection
	ClientClose
	BufferWrite
	BufferRead
)

var labels = [...]string{
	Port:             "Port",
	SocketAssign:     "Socket Assign",
	SocketBind:       "Socket Bind",
	SocketListen:     "Socket Listen",
	SocketClose:      "Socket Close",
	ClientConnection: "Client Connection",
	ClientClose:      "Client Close",
	BufferWrite:      "Buffer write",
	BufferRead:       "Buffer read",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(labels) {
		return "Unknown"
	}
	return labels[t]
}

// SessionScoped is true for operations on an accepted client connection,
// as opposed to the listening socket or the process configuration.
func (t Tag) SessionScoped() bool {
	switch t {
	case ClientClose, BufferWrite, BufferRead:
		return true
	}
	return false
}

// Kind returns the error category of a failure of t.
func (t Tag) Kind() Kind {
	switch t {
	case Port:
		return Configuration
	case SocketAssign, SocketBind, SocketListen, SocketClose:
		return Resource
	}
	return IO
}
