// Package daemon implements the client-facing accept loop (C5): it
// listens on a UNIX socket, wraps each accepted connection in a
// session.Session, optionally hands it a relay.Relay dialed against
// an upstream compositor, and tracks live sessions for the control
// server and the audit trail. Grounded on the teacher's
// daemon.ServeKRAgent accept loop (one goroutine per connection,
// errors logged and the loop continues).
package daemon

import (
	"net"
	"sync"
	"time"

	"github.com/op/go-logging"
	"github.com/satori/go.uuid"

	"wayl.io/wrd/common/log"
	"wayl.io/wrd/daemon/audit"
	"wayl.io/wrd/registry"
	"wayl.io/wrd/relay"
	"wayl.io/wrd/session"
	"wayl.io/wrd/wire"
)

// Daemon owns the globals table every session shares and the set of
// currently live sessions.
type Daemon struct {
	log          *logging.Logger
	globals      *registry.GlobalsTable
	upstreamPath string
	audit        *audit.Store

	mu       sync.Mutex
	sessions map[uuid.UUID]*session.Session
}

func New(log *logging.Logger, globals *registry.GlobalsTable, upstreamPath string, auditStore *audit.Store) *Daemon {
	return &Daemon{
		log:          log,
		globals:      globals,
		upstreamPath: upstreamPath,
		audit:        auditStore,
		sessions:     make(map[uuid.UUID]*session.Session),
	}
}

// ActiveSessionCount satisfies control.SessionCounter.
func (d *Daemon) ActiveSessionCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

// Serve accepts connections on listener, spawning one session per
// connection (§4.5). Accept errors are logged and the loop continues,
// so Serve does not return.
func (d *Daemon) Serve(listener *net.UnixListener) error {
	for {
		conn, err := listener.AcceptUnix()
		if err != nil {
			d.log.Error("daemon: accept error: ", err.Error())
			continue
		}
		go d.handle(conn)
	}
}

func (d *Daemon) handle(uc *net.UnixConn) {
	wireConn, err := wire.NewConn(uc)
	uc.Close()
	if err != nil {
		d.log.Warningf("daemon: wrapping accepted connection: %v", err)
		return
	}

	var upstream session.Upstream
	sess := session.New(wireConn, d.globals, nil, d.log)

	if d.upstreamPath != "" {
		r, err := relay.Dial(d.upstreamPath, sess, d.log)
		if err != nil {
			d.log.Warningf("%s: upstream dial failed, running standalone: %v", sess.Tag, err)
		} else {
			upstream = r
		}
	}
	sess.SetUpstream(upstream)

	d.addSession(sess)
	if d.audit != nil {
		if err := d.audit.RecordOpen(sess.ID.String(), sess.Tag, time.Now()); err != nil {
			d.log.Warningf("%s: audit RecordOpen: %v", sess.Tag, err)
		}
	}
	d.log.Infof("%s: session accepted", sess.Tag)

	sess.Run()

	d.removeSession(sess)
	if d.audit != nil {
		if err := d.audit.RecordClose(sess.ID.String(), time.Now(), "connection closed"); err != nil {
			d.log.Warningf("%s: audit RecordClose: %v", sess.Tag, err)
		}
	}
	d.log.Infof("%s: session ended", sess.Tag)
}

func (d *Daemon) addSession(s *session.Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions[s.ID] = s
}

func (d *Daemon) removeSession(s *session.Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, s.ID)
}

// NewLogger is a thin convenience wrapper so cmd/wrd doesn't need to
// import common/log directly for its one call site.
func NewLogger(name string, level logging.Level, syslog bool) *logging.Logger {
	return log.SetupLogging(name, level, syslog)
}
