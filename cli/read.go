package cli

import (
	"golang.org/x/text/cases"
)

type command int

const (
	invalidCmd command = iota
	dateCmd
	timeCmd
	doneCmd
)

// only the first tokenLen bytes of what a client sends are meaningful
const tokenLen = 4

var commands = map[string]command{
	"date": dateCmd,
	"time": timeCmd,
	"done": doneCmd,
}

// read returns the command entered by the client, ignoring case and anything
// after the token, such as line terminators.
// Input shorter than a token is invalid.
func read(input []byte) command {
	if len(input) < tokenLen {
		return invalidCmd
	}
	return commands[cases.Fold().String(string(input[:tokenLen]))]
}

func (cmd command) String() string {
	switch cmd {
	case dateCmd:
		return "date"
	case timeCmd:
		return "time"
	case doneCmd:
		return "done"
	}
	return "invalid"
}
