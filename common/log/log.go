// Package log wraps github.com/op/go-logging with the leveled,
// optionally-syslog-backed setup every wrd component shares.
package log

import (
	"fmt"
	"os"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortfunc} ▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`,
)

// SetupLogging builds a named logger writing to stderr, and to syslog
// when useSyslog is true and a syslog daemon is reachable.
func SetupLogging(name string, level logging.Level, useSyslog bool) *logging.Logger {
	log := logging.MustGetLogger(name)

	backends := []logging.Backend{}

	stderrBackend := logging.NewLogBackend(os.Stderr, "", 0)
	stderrFormatter := logging.NewBackendFormatter(stderrBackend, format)
	stderrLeveled := logging.AddModuleLevel(stderrFormatter)
	stderrLeveled.SetLevel(level, "")
	backends = append(backends, stderrLeveled)

	if useSyslog {
		syslogBackend, err := logging.NewSyslogBackend(name)
		if err == nil {
			syslogLeveled := logging.AddModuleLevel(syslogBackend)
			syslogLeveled.SetLevel(level, "")
			backends = append(backends, syslogLeveled)
		} else {
			fmt.Fprintln(os.Stderr, "syslog unavailable, logging to stderr only:", err)
		}
	}

	logging.SetBackend(backends...)
	return log
}
