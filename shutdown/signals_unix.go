//go:build !windows

package shutdown

import (
	"os"
	"syscall"
)

// Signals are the ones that trigger a graceful exit.
var Signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
