// Package relay implements the upstream leg of a session (C6): each
// client session that isn't running standalone dials its own
// dedicated connection to a real upstream compositor, so object IDs
// pass through unremapped — a client ID space is never shared across
// two sessions on the same upstream connection, unlike the teacher's
// single shared Agent multiplexing many ssh sessions. What the teacher
// multiplexes by session ID, wrd multiplexes by dedicated connection;
// see DESIGN.md for why a general N:1 ID-translation table was not
// built.
package relay

import (
	"net"
	"sync"

	"github.com/hashicorp/golang-lru"
	"github.com/op/go-logging"
	"golang.org/x/sys/unix"

	"wayl.io/wrd/common/util"
	"wayl.io/wrd/wire"
)

// SessionSink is the half of session.Session a Relay needs: somewhere
// to deliver translated upstream events, and a way to wake a session
// suspended on RelayWait. session.Session satisfies this structurally;
// relay never imports session to avoid the cycle session already
// avoids by depending on relay only through the Upstream interface.
type SessionSink interface {
	DeliverUpstreamEvent(senderID uint32, opcode uint16, body []byte, fds []int) error
	ClearRelayWait()
}

// Relay owns one connection to an upstream compositor on behalf of
// exactly one session, forwarding relayed requests out and decoded
// events back. It implements session.Upstream.
type Relay struct {
	conn *wire.Conn
	acc  *wire.Accumulator
	sink SessionSink
	log  *logging.Logger

	// pending tracks wait-tokens for in-flight RelayWait requests, the
	// direct analogue of the teacher's hostAuthCallbacksBySessionID
	// LRU: bounded so a session that never gets acknowledged (upstream
	// died mid-handshake) can't grow this without limit.
	pending *lru.Cache

	mu       sync.Mutex
	nextWait uint64
	closed   bool
}

// Dial connects to an upstream compositor's UNIX socket and starts its
// event-forwarding loop. sink receives every decoded upstream event.
func Dial(path string, sink SessionSink, log *logging.Logger) (*Relay, error) {
	rawConn, err := net.Dial("unix", path)
	if err != nil {
		return nil, err
	}
	uc, ok := rawConn.(*net.UnixConn)
	if !ok {
		rawConn.Close()
		return nil, util.ErrUpstreamUnavailable
	}
	conn, err := wire.NewConn(uc)
	if err != nil {
		rawConn.Close()
		return nil, err
	}
	rawConn.Close()

	pending, err := lru.New(128)
	if err != nil {
		return nil, err
	}

	r := &Relay{
		conn:    conn,
		acc:     wire.NewAccumulator(),
		sink:    sink,
		log:     log,
		pending: pending,
	}
	go r.readLoop()
	return r, nil
}

// Send forwards a client request upstream. Object IDs are not
// remapped: this connection is dedicated to one session, so the
// client's ID space and the upstream's client-ID space are the same
// namespace by construction. wait marks the send as a RelayWait
// request: the next upstream frame to arrive afterward is taken as
// its acknowledgement and wakes the session (see onUpstreamFrame).
// conn.Write never takes ownership of fds, so Send closes them here
// once the write completes, mirroring session.writeLoop's handling
// of the symmetric outbound-to-client path.
func (r *Relay) Send(senderID uint32, opcode uint16, body []byte, fds []int, wait bool) error {
	data, err := wire.EncodeFrame(senderID, opcode, body)
	if err != nil {
		return err
	}
	if wait {
		r.markWaiting()
	}
	err = r.conn.Write(data, fds)
	for _, fd := range fds {
		unix.Close(fd)
	}
	return err
}

func (r *Relay) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return r.conn.Close()
}

func (r *Relay) readLoop() {
	for {
		data, fds, err := r.conn.Read()
		if err != nil {
			r.mu.Lock()
			closed := r.closed
			r.mu.Unlock()
			if !closed {
				r.log.Infof("relay: upstream read error, session will see a stalled RelayWait: %v", err)
			}
			return
		}
		r.acc.Feed(data, fds)

		for {
			frame, ok, ferr := r.acc.Next()
			if ferr != nil {
				r.log.Warningf("relay: corrupt upstream frame, closing: %v", ferr)
				return
			}
			if !ok {
				break
			}
			// fd-bearing events (wl_keyboard.keymap) arrive one per
			// sendmsg; draining here hands them to the frame that
			// introduced them rather than any sibling frame already
			// queued from an earlier read.
			consumed := r.acc.Fds().Drain()
			r.onUpstreamFrame(frame, consumed)
		}
	}
}

// onUpstreamFrame delivers one upstream event to the session and, if
// a RelayWait is currently suspended, wakes it — the first event to
// arrive after a RelayWait send is taken as that request's
// acknowledgement, since Wayland carries no explicit request/reply
// correlation id of its own.
func (r *Relay) onUpstreamFrame(frame wire.Frame, fds []int) {
	if err := r.sink.DeliverUpstreamEvent(frame.SenderID, frame.Opcode, frame.Body, fds); err != nil {
		r.log.Infof("relay: delivering upstream event: %v", err)
	}
	if _, ok := r.popOldestPending(); ok {
		r.sink.ClearRelayWait()
	}
}

// markWaiting records that a RelayWait send is now awaiting
// acknowledgement. Send calls it before writing a RelayWait request.
func (r *Relay) markWaiting() uint64 {
	r.mu.Lock()
	token := r.nextWait
	r.nextWait++
	r.mu.Unlock()
	r.pending.Add(token, struct{}{})
	return token
}

func (r *Relay) popOldestPending() (uint64, bool) {
	keys := r.pending.Keys()
	if len(keys) == 0 {
		return 0, false
	}
	token := keys[0].(uint64)
	r.pending.Remove(token)
	return token, true
}
