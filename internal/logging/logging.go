// Package logging builds the leveled loggers used by the server and CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

const header = "${time_rfc3339} ${level} ${prefix} ${short_file}:${line}"

// ParseLevel maps debug|info|warn|error|off onto gommon levels.
func ParseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return log.INFO, fmt.Errorf("unknown log level %q", s)
}

// New returns a logger with the given prefix and level. It also applies the
// level and output to the package-level logger the engine writes to.
func New(prefix, level string, out io.Writer) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := log.New(prefix)
	l.SetHeader(header)
	l.SetLevel(lvl)

	log.SetHeader(header)
	log.SetLevel(lvl)
	if out != nil {
		l.SetOutput(out)
		log.SetOutput(out)
	}
	return l, nil
}
