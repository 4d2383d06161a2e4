// Command wrd is the session-relay daemon: it listens on a
// client-facing UNIX socket (C5), optionally dials an upstream
// compositor socket (C6), and serves one session (C4) per accepted
// client. Flag handling follows gosedctl's kong.Parse shape; the
// daemon's own structure follows krd/main.go (listen, start control
// server, wait on a stop signal).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/op/go-logging"

	"wayl.io/wrd/common/persist"
	"wayl.io/wrd/common/socket"
	"wayl.io/wrd/daemon"
	"wayl.io/wrd/daemon/audit"
	"wayl.io/wrd/daemon/control"
	"wayl.io/wrd/registry"
)

// cli is the main command line interface struct required by kong.
var cli struct {
	Socket          string `flag:"" required:"" short:"s" help:"Path of the client-facing UNIX socket to listen on"`
	ControlSocket   string `flag:"" optional:"" short:"c" help:"Path of the control-server UNIX socket"`
	Upstream        string `flag:"" optional:"" short:"u" help:"Path of an upstream compositor's UNIX socket to relay to"`
	AuditDB         string `flag:"" optional:"" help:"Path of the sqlite audit database (default: in-memory)"`
	GlobalsSnapshot string `flag:"" optional:"" help:"Path to atomically write the globals table snapshot to on startup"`
	LogLevel        string `flag:"" optional:"" default:"info" help:"Log level: debug, info, notice, warning, error"`
	Syslog          bool   `flag:"" optional:"" help:"Also log to syslog"`
}

func writeGlobalsSnapshot(path string, globals *registry.GlobalsTable) error {
	all := globals.All()
	snapshot := make([]persist.GlobalSnapshot, len(all))
	for i, g := range all {
		snapshot[i] = persist.GlobalSnapshot{Name: g.Name, Interface: g.Interface, Version: g.Version}
	}
	return persist.WriteGlobalsSnapshot(path, snapshot)
}

func levelFromFlag(s string) logging.Level {
	lvl, err := logging.LogLevel(s)
	if err != nil {
		return logging.INFO
	}
	return lvl
}

func main() {
	kong.Parse(&cli,
		kong.Name("wrd"),
		kong.Description("Wayland session-relay daemon"),
		kong.UsageOnError(),
	)

	log := daemon.NewLogger("wrd", levelFromFlag(cli.LogLevel), cli.Syslog)

	defer func() {
		if x := recover(); x != nil {
			log.Error(fmt.Sprintf("run time panic: %v", x))
			log.Error(string(debug.Stack()))
			panic(x)
		}
	}()

	auditPath := cli.AuditDB
	if auditPath == "" {
		auditPath = ":memory:"
	}
	auditStore, err := audit.Open(auditPath)
	if err != nil {
		log.Fatal(err)
	}
	defer auditStore.Close()

	globals := registry.NewGlobalsTable()
	if cli.GlobalsSnapshot != "" {
		if err := writeGlobalsSnapshot(cli.GlobalsSnapshot, globals); err != nil {
			log.Warningf("globals snapshot: %v", err)
		}
	}
	d := daemon.New(log, globals, cli.Upstream, auditStore)

	listener, err := socket.ClientListen(cli.Socket)
	if err != nil {
		log.Fatal(err)
	}
	defer listener.Close()

	go func() {
		if err := d.Serve(listener); err != nil {
			log.Error("daemon.Serve returned: ", err)
		}
	}()

	if cli.ControlSocket != "" {
		controlListener, err := socket.ControlListen(cli.ControlSocket)
		if err != nil {
			log.Fatal(err)
		}
		defer controlListener.Close()

		cs := control.NewControlServer(log, d)
		go func() {
			if err := cs.HandleControlHTTP(controlListener); err != nil {
				log.Error("control server returned: ", err)
			}
		}()
	}

	log.Notice("wrd launched and listening on ", cli.Socket)

	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	sig, ok := <-stopSignal
	if ok {
		log.Notice("stopping with signal ", sig)
	}
}
