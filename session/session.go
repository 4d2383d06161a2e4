// Package session implements the per-connection engine (C4): it owns
// a client's object registry, decodes and dispatches inbound frames,
// and drains an outbound event queue back to the client socket. It
// imports proto, proto/wl and proto/xdgshell directly — something
// those packages cannot do back — so the per-Kind dispatch table
// lives here rather than in proto itself.
package session

import (
	"errors"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/atotto/clipboard"
	"github.com/op/go-logging"
	"github.com/satori/go.uuid"
	"golang.org/x/sys/unix"

	"wayl.io/wrd/common/log"
	"wayl.io/wrd/common/metrics"
	"wayl.io/wrd/common/util"
	"wayl.io/wrd/proto"
	"wayl.io/wrd/proto/wl"
	"wayl.io/wrd/proto/xdgshell"
	"wayl.io/wrd/registry"
	"wayl.io/wrd/wire"
)

// outboundQueueCapacity matches §4.5's "1000 events is adequate"
// sizing for the per-session event channel.
const outboundQueueCapacity = 1000

// Upstream is the subset of the relay (C6) a session needs to forward
// Relay/RelayWait requests. relay.Relay implements it; a session
// constructed without one runs in standalone-server mode, where
// Relay/RelayWait actions are accepted but never forwarded anywhere.
type Upstream interface {
	Send(senderID uint32, opcode uint16, body []byte, fds []int, wait bool) error
	Close() error
}

type outboundMsg struct {
	data []byte
	fds  []int
}

// Session is one client connection's engine state. It implements
// proto.Engine so the proto/wl and proto/xdgshell dispatch functions
// can mutate the registry and emit events without importing session.
type Session struct {
	ID  uuid.UUID
	Tag string

	conn     *wire.Conn
	acc      *wire.Accumulator
	reg      *registry.Registry
	globals  *registry.GlobalsTable
	upstream Upstream
	log      *logging.Logger

	out chan outboundMsg

	nextServerID   uint32
	callbackSerial uint32

	relayMu      sync.Mutex
	relayWaiting bool
	relayWakeCh  chan struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// New creates a session seeded with wl_display@1 bound, ready to have
// Run called on it. upstream may be nil for standalone-server mode.
func New(conn *wire.Conn, globals *registry.GlobalsTable, upstream Upstream, parentLog *logging.Logger) *Session {
	id := uuid.NewV4()
	s := &Session{
		ID:          id,
		Tag:         log.ShortTag(id),
		conn:        conn,
		acc:         wire.NewAccumulator(),
		reg:         registry.New(),
		globals:     globals,
		upstream:    upstream,
		log:         parentLog,
		out:         make(chan outboundMsg, outboundQueueCapacity),
		relayWakeCh: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	s.nextServerID = uint32(registry.ServerIDMin)
	// Insert never fails for the display singleton: id 1 is always
	// in range and the registry starts empty.
	_ = s.reg.Insert(&proto.Display{ID: registry.DisplayID})
	metrics.ActiveSessions.Inc()
	return s
}

// SetUpstream attaches an upstream link constructed after the session
// itself, the way daemon.handle dials relay.Dial(path, sess, ...) —
// relay.Relay needs sess as its SessionSink, so the two can't be
// constructed in one step. Call before Run; not safe concurrently
// with a running session.
func (s *Session) SetUpstream(upstream Upstream) {
	s.upstream = upstream
}

// --- proto.Engine ---

func (s *Session) Insert(res registry.Resource) error {
	return s.reg.Insert(res)
}

func (s *Session) Get(id registry.ObjectID) (registry.Resource, bool) {
	return s.reg.Get(id)
}

// Destroy removes a resource and emits wl_display.delete_id, per §4.4
// "Destruction". Destroying an object that isn't bound is itself a
// protocol error, not a silent no-op.
func (s *Session) Destroy(id registry.ObjectID) error {
	if !s.reg.Remove(id) {
		return proto.InvalidObject(uint32(id), "destroy: object %d not bound", id)
	}
	return s.Emit(uint32(registry.DisplayID), wl.EventDeleteID, func(enc *wire.Encoder) {
		enc.PutUint(uint32(id))
	})
}

// NextServerID allocates monotonically from the server-reserved
// range. Reuse of freed ids is permitted by spec but not implemented
// here: monotonic allocation alone satisfies §4.4.
func (s *Session) NextServerID() registry.ObjectID {
	return registry.ObjectID(atomic.AddUint32(&s.nextServerID, 1) - 1)
}

func (s *Session) Globals() *registry.GlobalsTable {
	return s.globals
}

// Emit encodes and enqueues one event frame. A full outbound channel
// blocks the caller, which is the backpressure suspension point §5
// describes; closing the session unblocks any such send.
func (s *Session) Emit(senderID uint32, opcode uint16, fn func(*wire.Encoder)) error {
	enc := wire.NewEncoder(senderID, opcode)
	fn(enc)
	data, fds, err := enc.Finish()
	if err != nil {
		return err
	}
	select {
	case s.out <- outboundMsg{data: data, fds: fds}:
		metrics.FramesEncoded.Inc()
		return nil
	case <-s.done:
		return util.ErrSessionClosed
	}
}

func (s *Session) NextCallbackSerial() uint32 {
	return atomic.AddUint32(&s.callbackSerial, 1)
}

// OfferClipboardSelection asks the client that owns sourceID to
// write its selection data into a pipe (wl_data_source.send), then
// mirrors what it writes onto the host clipboard. Standalone mode
// only: an attached upstream compositor owns selection handling once
// the source is relayed to it.
func (s *Session) OfferClipboardSelection(sourceID registry.ObjectID, mimeTypes []string) error {
	if s.upstream != nil || len(mimeTypes) == 0 {
		return nil
	}
	mime := mimeTypes[0]

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	wfd := int(w.Fd())

	if err := s.Emit(uint32(sourceID), wl.DataSourceEventSend, func(enc *wire.Encoder) {
		enc.PutString(mime)
		enc.PutFD(wfd)
	}); err != nil {
		r.Close()
		w.Close()
		return err
	}
	// wfd's ownership passes to writeLoop, which closes it once sent;
	// stop the os.File finalizer from closing it a second time.
	runtime.SetFinalizer(w, nil)

	go func() {
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			s.log.Infof("%s: clipboard selection read: %v", s.Tag, err)
			return
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			s.log.Infof("%s: clipboard write: %v", s.Tag, err)
		}
	}()
	return nil
}

// --- relay sink (used by relay.Relay via its own SessionSink interface) ---

// DeliverUpstreamEvent enqueues an event frame already translated
// into this session's object-ID namespace.
func (s *Session) DeliverUpstreamEvent(senderID uint32, opcode uint16, body []byte, fds []int) error {
	data, err := wire.EncodeFrame(senderID, opcode, body)
	if err != nil {
		return err
	}
	select {
	case s.out <- outboundMsg{data: data, fds: fds}:
		metrics.FramesEncoded.Inc()
		return nil
	case <-s.done:
		return util.ErrSessionClosed
	}
}

// ClearRelayWait wakes a session suspended in RelayWait, called by
// the relay once it has finished processing and delivering the
// upstream reply this session was waiting on (§4.6).
func (s *Session) ClearRelayWait() {
	s.relayMu.Lock()
	wasWaiting := s.relayWaiting
	s.relayWaiting = false
	s.relayMu.Unlock()
	if wasWaiting {
		metrics.RelayWaitsInFlight.Dec()
		select {
		case s.relayWakeCh <- struct{}{}:
		default:
		}
	}
}

// --- dispatch ---

// dispatch routes a parsed resource to its interface's handler. This
// type switch is the table §3 and SPEC_FULL §3.2 describe as a
// closed sum type matched against opcode handlers; it lives in
// session because proto/wl and proto/xdgshell import proto, so proto
// cannot import them back.
func (s *Session) dispatch(ctx *proto.Context, res registry.Resource, body []byte) (proto.NextAction, error) {
	switch r := res.(type) {
	case *proto.Display:
		return wl.DispatchDisplay(ctx, r, body)
	case *proto.Registry:
		return wl.DispatchRegistry(ctx, r, body)
	case *proto.Callback:
		return wl.DispatchCallback(ctx, r, body)
	case *proto.Compositor:
		return wl.DispatchCompositor(ctx, r, body)
	case *proto.Subcompositor:
		return wl.DispatchSubcompositor(ctx, r, body)
	case *proto.Shm:
		return wl.DispatchShm(ctx, r, body)
	case *proto.ShmPool:
		return wl.DispatchShmPool(ctx, r, body)
	case *proto.Buffer:
		return wl.DispatchBuffer(ctx, r, body)
	case *proto.Surface:
		return wl.DispatchSurface(ctx, r, body)
	case *proto.Subsurface:
		return wl.DispatchSubsurface(ctx, r, body)
	case *proto.Region:
		return wl.DispatchRegion(ctx, r, body)
	case *proto.Seat:
		return wl.DispatchSeat(ctx, r, body)
	case *proto.Pointer:
		return wl.DispatchPointer(ctx, r, body)
	case *proto.Keyboard:
		return wl.DispatchKeyboard(ctx, r, body)
	case *proto.Touch:
		return wl.DispatchTouch(ctx, r, body)
	case *proto.Output:
		return wl.DispatchOutput(ctx, r, body)
	case *proto.DataDeviceManager:
		return wl.DispatchDataDeviceManager(ctx, r, body)
	case *proto.DataDevice:
		return wl.DispatchDataDevice(ctx, r, body)
	case *proto.DataSource:
		return wl.DispatchDataSource(ctx, r, body)
	case *proto.DataOffer:
		return wl.DispatchDataOffer(ctx, r, body)
	case *proto.Shell:
		return wl.DispatchShell(ctx, r, body)
	case *proto.ShellSurface:
		return wl.DispatchShellSurface(ctx, r, body)
	case *proto.XdgWmBase:
		return xdgshell.DispatchXdgWmBase(ctx, r, body)
	case *proto.XdgPositioner:
		return xdgshell.DispatchXdgPositioner(ctx, r, body)
	case *proto.XdgSurface:
		return xdgshell.DispatchXdgSurface(ctx, r, body)
	case *proto.XdgToplevel:
		return xdgshell.DispatchXdgToplevel(ctx, r, body)
	case *proto.XdgPopup:
		return xdgshell.DispatchXdgPopup(ctx, r, body)
	default:
		return proto.Nop, proto.InvalidObject(ctx.SenderID, "object %d: resource kind %s has no dispatcher", ctx.SenderID, res.Kind())
	}
}

func errorCodeLabel(code uint32) string {
	switch code {
	case proto.ErrorInvalidObject:
		return "invalid_object"
	case proto.ErrorInvalidMethod:
		return "invalid_method"
	case proto.ErrorNoMemory:
		return "no_memory"
	default:
		return "other"
	}
}

// HandleFrame implements one iteration of §4.4's main loop body: look
// up the sender, dispatch, then act on Nop/Relay/RelayWait. Protocol
// errors are converted to wl_display.error and do not propagate;
// everything else is transport-fatal and bubbles up to Run, which
// tears the session down.
func (s *Session) HandleFrame(frame wire.Frame) error {
	res, ok := s.reg.Get(registry.ObjectID(frame.SenderID))
	if !ok {
		metrics.ProtocolErrors.WithLabelValues("invalid_object").Inc()
		return wl.EmitError(s, proto.InvalidObject(frame.SenderID, "object %d not bound", frame.SenderID))
	}

	before := s.acc.Fds().Snapshot()
	dec := wire.NewDecoder(frame.Body, s.acc.Fds())
	ctx := &proto.Context{Engine: s, SenderID: frame.SenderID, Opcode: frame.Opcode, Fds: s.acc.Fds(), Dec: dec}
	action, err := s.dispatch(ctx, res, frame.Body)
	after := s.acc.Fds().Snapshot()
	consumed := before[:len(before)-len(after)]

	if err != nil {
		var perr *proto.ProtocolError
		if errors.As(err, &perr) {
			metrics.ProtocolErrors.WithLabelValues(errorCodeLabel(perr.Code)).Inc()
			return wl.EmitError(s, perr)
		}
		return err
	}

	switch action {
	case proto.Nop:
		return nil
	case proto.Relay:
		metrics.RelayedRequests.WithLabelValues("relay").Inc()
		return s.relay(frame, dec.Encoded(), consumed, false)
	case proto.RelayWait:
		metrics.RelayedRequests.WithLabelValues("relay_wait").Inc()
		return s.relay(frame, dec.Encoded(), consumed, true)
	default:
		return nil
	}
}

// relay forwards a request upstream and, when wait is set, suspends
// HandleFrame's caller until the relay clears RelayWait (§4.6).
// Standalone mode (no upstream configured) treats Relay/RelayWait as
// Nop: there is nowhere to forward to. body is the canonical
// re-encoding of the request's arguments (wire.Decoder.Encoded), not
// the raw frame bytes: a client-supplied length or padding byte that
// happens to parse cleanly must not be passed upstream verbatim
// (§4.3 step 3).
func (s *Session) relay(frame wire.Frame, body []byte, fds []int, wait bool) error {
	if s.upstream == nil {
		for _, fd := range fds {
			unix.Close(fd)
		}
		return nil
	}
	// Mark the wait before sending, so an upstream reply that arrives
	// before Send returns still finds relayWaiting set and wakes us.
	if wait {
		s.relayMu.Lock()
		s.relayWaiting = true
		s.relayMu.Unlock()
		metrics.RelayWaitsInFlight.Inc()
	}
	if err := s.upstream.Send(frame.SenderID, frame.Opcode, body, fds, wait); err != nil {
		if wait {
			s.relayMu.Lock()
			wasWaiting := s.relayWaiting
			s.relayWaiting = false
			s.relayMu.Unlock()
			if wasWaiting {
				metrics.RelayWaitsInFlight.Dec()
			}
		}
		return err
	}
	if !wait {
		return nil
	}

	select {
	case <-s.relayWakeCh:
		return nil
	case <-s.done:
		return util.ErrSessionClosed
	}
}

// Run drives the session until the client socket closes or a
// transport-fatal error occurs. It spawns the writer goroutine that
// drains the outbound channel and then runs the read/dispatch loop
// inline, matching §4.5's "reader task runs the main loop" shape
// without an extra goroutine on the hot read path.
func (s *Session) Run() {
	defer s.Close()
	go s.writeLoop()

	for {
		data, fds, err := s.conn.Read()
		if err != nil {
			if errors.Is(err, util.ErrSessionClosed) {
				return
			}
			s.log.Infof("%s: read error, closing: %v", s.Tag, err)
			return
		}
		s.acc.Feed(data, fds)

		for {
			frame, ok, ferr := s.acc.Next()
			if ferr != nil {
				s.log.Warningf("%s: corrupt frame header, closing: %v", s.Tag, ferr)
				return
			}
			if !ok {
				break
			}
			metrics.FramesDecoded.Inc()
			if err := s.HandleFrame(frame); err != nil {
				s.log.Infof("%s: session ending: %v", s.Tag, err)
				return
			}
		}
	}
}

func (s *Session) writeLoop() {
	for {
		select {
		case msg := <-s.out:
			err := s.conn.Write(msg.data, msg.fds)
			for _, fd := range msg.fds {
				unix.Close(fd)
			}
			if err != nil {
				s.log.Infof("%s: write error, closing: %v", s.Tag, err)
				go s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// Close tears the session down idempotently: closes the client
// socket, releases any fds still queued unconsumed, and closes the
// upstream link if one is attached.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
		for _, fd := range s.acc.Fds().Drain() {
			unix.Close(fd)
		}
		if s.upstream != nil {
			s.upstream.Close()
		}
		metrics.ActiveSessions.Dec()
	})
	return nil
}
