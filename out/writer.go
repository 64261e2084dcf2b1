package out

import (
	"io"
)

// Reply writes msg to w in full.
// A short write without an error from w is reported as io.ErrShortWrite.
func Reply(w io.Writer, msg string) error {
	n, err := io.WriteString(w, msg)
	if err == nil && n < len(msg) {
		err = io.ErrShortWrite
	}
	return err
}
