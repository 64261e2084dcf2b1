//go:build !unix

package sock

import (
	"fmt"
	"net"

	"github.com/elastic/daytimed/status"
)

// listen leaves socket creation, binding and listening to the net package.
// The backlog is the operating system default; backlog is ignored.
// Every step is still recorded: the steps before the failing one succeeded.
func listen(port, _ int, c Classifier) (net.Listener, error) {
	l, err := net.Listen("tcp4", fmt.Sprintf(":%d", port))
	for _, step := range setupSteps {
		if err != nil && step == failedStep(err) {
			c.Classify(err, step)
			return nil, status.Wrap(err, step)
		}
		c.Classify(nil, step)
	}
	return l, nil
}
