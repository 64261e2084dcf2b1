package cli

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/elastic/daytimed/status"
	"github.com/elastic/daytimed/strcoll"
)

// ResolvePort returns the port given as first positional argument.
// Decimal, hexadecimal (0x) and octal (leading 0) notations are accepted.
// A missing, malformed or out of range port is a configuration error.
func ResolvePort(args []string) (int, error) {
	arg := strings.TrimSpace(strcoll.Get(0, args))
	if arg == "" {
		return 0, status.Wrap(errors.New("missing port number"), status.Port)
	}
	port, err := parsePort(arg)
	if err != nil {
		return 0, status.Wrap(errors.Errorf("invalid port number %q", arg), status.Port)
	}
	if port <= 0 || port > 65535 {
		return 0, status.Wrap(errors.Errorf("port number %d out of range 1-65535", port), status.Port)
	}
	return int(port), nil
}

// parsePort reads s as an integer in the notations of strtol with base 0.
// Unlike ParseInt with base 0, no 0b or 0o prefix and no underscore is accepted.
func parsePort(s string) (int64, error) {
	base := 10
	switch {
	case len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
		base, s = 16, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, s = 8, s[1:]
	}
	if base != 10 && (s == "" || s[0] == '+' || s[0] == '-') {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(s, base, 64)
}
