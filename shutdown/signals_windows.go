//go:build windows

package shutdown

import (
	"os"
)

// Signals are the ones that trigger a graceful exit.
// Windows only delivers os.Interrupt to console processes.
var Signals = []os.Signal{os.Interrupt}
