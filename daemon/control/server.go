// Package control serves wrd's operator-facing control socket:
// version, liveness, and prometheus metrics, mirroring krd's
// control.ControlServer (minus anything that needs an enclave client).
package control

import (
	"net"
	"net/http"
	"strconv"

	"github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wayl.io/wrd/common/util"
	"wayl.io/wrd/common/version"
)

// SessionCounter reports how many client sessions are currently
// connected, so /ping can double as a shallow liveness probe beyond
// "the process answers HTTP at all".
type SessionCounter interface {
	ActiveSessionCount() int
}

type ControlServer struct {
	log  *logging.Logger
	acct SessionCounter
}

func NewControlServer(log *logging.Logger, acct SessionCounter) *ControlServer {
	return &ControlServer{log: log, acct: acct}
}

// HandleControlHTTP serves the control routes over listener until it
// errors, the same shape as krd's ControlServer.HandleControlHTTP.
func (cs *ControlServer) HandleControlHTTP(listener net.Listener) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", cs.handleVersion)
	mux.HandleFunc("/ping", cs.handlePing)
	mux.Handle("/metrics", promhttp.Handler())
	return http.Serve(listener, mux)
}

func (cs *ControlServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(version.CURRENT_VERSION.String()))
}

func (cs *ControlServer) handlePing(w http.ResponseWriter, r *http.Request) {
	count := 0
	if cs.acct != nil {
		count = cs.acct.ActiveSessionCount()
	}
	w.Write([]byte("pong "))
	w.Write([]byte(strconv.Itoa(count)))
	w.Write([]byte(" host="))
	w.Write([]byte(util.MachineName()))
}
