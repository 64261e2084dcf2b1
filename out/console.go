package out

import (
	"io"

	"github.com/fatih/color"
)

// Console prints status lines meant for whoever runs the server.
type Console struct {
	w      io.Writer
	info   *color.Color
	notice *color.Color
}

func NewConsole(w io.Writer) *Console {
	return &Console{
		w:      w,
		info:   color.New(color.FgGreen),
		notice: color.New(color.FgYellow),
	}
}

// Info prints a line about normal operation.
func (c *Console) Info(format string, args ...interface{}) {
	c.info.Fprintf(c.w, format+"\n", args...)
}

// Notice prints a line about the server going away.
func (c *Console) Notice(format string, args ...interface{}) {
	c.notice.Fprintf(c.w, format+"\n", args...)
}
