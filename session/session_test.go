package session

import (
	"encoding/binary"
	"net"
	"os"
	"testing"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sys/unix"

	"wayl.io/wrd/common/log"
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
	"wayl.io/wrd/wire"
)

var nativeEndian = binary.NativeEndian

// newConnPair returns two *wire.Conn wrapping opposite ends of a real
// UNIX socketpair, so a Session can be driven exactly as it would be
// over a client connection.
func newConnPair(t *testing.T) (*wire.Conn, *wire.Conn) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}

	mk := func(fd int) *wire.Conn {
		f := os.NewFile(uintptr(fd), "sockpair")
		nc, err := net.FileConn(f)
		if err != nil {
			t.Fatalf("FileConn: %v", err)
		}
		defer f.Close()
		uc, ok := nc.(*net.UnixConn)
		if !ok {
			t.Fatalf("not a unix conn")
		}
		c, err := wire.NewConn(uc)
		if err != nil {
			t.Fatalf("wire.NewConn: %v", err)
		}
		nc.Close()
		return c
	}

	return mk(fds[0]), mk(fds[1])
}

func testLogger() *logging.Logger {
	return log.SetupLogging("session_test", logging.CRITICAL, false)
}

func putU32(b []byte, off int, v uint32) {
	nativeEndian.PutUint32(b[off:off+4], v)
}

func u32(b []byte, off int) uint32 {
	return nativeEndian.Uint32(b[off : off+4])
}

// frameBody packs a sequence of u32 words into a body, enough for
// every request exercised in this file (none of them carry strings).
func frameBody(words ...uint32) []byte {
	b := make([]byte, 4*len(words))
	for i, w := range words {
		putU32(b, 4*i, w)
	}
	return b
}

func TestSyncEmitsDoneThenDeleteID(t *testing.T) {
	client, server := newConnPair(t)
	defer client.Close()

	s := New(server, registry.NewGlobalsTable(), nil, testLogger())
	defer s.Close()

	// wl_display@1.sync(callback=2)
	frame := wire.Frame{SenderID: uint32(registry.DisplayID), Opcode: 0, Body: frameBody(2)}
	if err := s.HandleFrame(frame); err != nil {
		t.Fatalf("HandleFrame: %v", err)
	}

	done := <-s.out
	senderID, _, opcode, err := wire.DecodeHeader(done.data[:wire.HeaderLen])
	if err != nil {
		t.Fatalf("decode done header: %v", err)
	}
	if senderID != 2 || opcode != 0 {
		t.Fatalf("done event: got sender=%d opcode=%d, want sender=2 opcode=0", senderID, opcode)
	}
	serial := u32(done.data, wire.HeaderLen)
	if serial != 1 {
		t.Fatalf("callback serial: got %d, want 1", serial)
	}

	del := <-s.out
	senderID, _, opcode, err = wire.DecodeHeader(del.data[:wire.HeaderLen])
	if err != nil {
		t.Fatalf("decode delete_id header: %v", err)
	}
	if senderID != uint32(registry.DisplayID) || opcode != 1 {
		t.Fatalf("delete_id event: got sender=%d opcode=%d, want sender=1 opcode=1", senderID, opcode)
	}
	if deleted := u32(del.data, wire.HeaderLen); deleted != 2 {
		t.Fatalf("delete_id argument: got %d, want 2", deleted)
	}

	if _, ok := s.Get(registry.ObjectID(2)); ok {
		t.Fatalf("callback object 2 should have been removed from the registry")
	}
}

func TestGetRegistryAdvertisesGlobalsInAscendingNameOrder(t *testing.T) {
	client, server := newConnPair(t)
	defer client.Close()

	s := New(server, registry.NewGlobalsTable(), nil, testLogger())
	defer s.Close()

	// wl_display@1.get_registry(registry=2)
	frame := wire.Frame{SenderID: uint32(registry.DisplayID), Opcode: 1, Body: frameBody(2)}
	if err := s.HandleFrame(frame); err != nil {
		t.Fatalf("HandleFrame: %v", err)
	}

	wantNames := []uint32{1, 2, 3}
	for _, wantName := range wantNames {
		msg := <-s.out
		senderID, _, opcode, err := wire.DecodeHeader(msg.data[:wire.HeaderLen])
		if err != nil {
			t.Fatalf("decode global header: %v", err)
		}
		if senderID != 2 || opcode != 0 {
			t.Fatalf("global event: got sender=%d opcode=%d, want sender=2 opcode=0", senderID, opcode)
		}
		gotName := u32(msg.data, wire.HeaderLen)
		if gotName != wantName {
			t.Fatalf("global name: got %d, want %d", gotName, wantName)
		}
	}
}

func TestBindFormAThenShmCreatePoolIsRelayWait(t *testing.T) {
	client, server := newConnPair(t)
	defer client.Close()

	up := newFakeUpstream()
	s := New(server, registry.NewGlobalsTable(), up, testLogger())
	defer s.Close()

	// registry object is id 2.
	if err := s.Insert(&proto.Registry{ID: 2}); err != nil {
		t.Fatalf("insert registry: %v", err)
	}

	// wl_registry@2.bind(name=2 [wl_shm], id=3) — form A, 8-byte body.
	bindFrame := wire.Frame{SenderID: 2, Opcode: 0, Body: frameBody(2, 3)}
	if err := s.HandleFrame(bindFrame); err != nil {
		t.Fatalf("HandleFrame(bind): %v", err)
	}

	// wl_shm advertises two pixel formats on bind.
	for i := 0; i < 2; i++ {
		msg := <-s.out
		senderID, _, opcode, err := wire.DecodeHeader(msg.data[:wire.HeaderLen])
		if err != nil {
			t.Fatalf("decode format header: %v", err)
		}
		if senderID != 3 || opcode != 0 {
			t.Fatalf("format event: got sender=%d opcode=%d, want sender=3 opcode=0", senderID, opcode)
		}
	}

	// wl_shm@3.create_pool(id=4, fd, size=4096) should suspend pending
	// upstream acknowledgement.
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()
	s.acc.Fds().Push([]int{int(r.Fd())})

	poolFrame := wire.Frame{SenderID: 3, Opcode: 0, Body: frameBody(4, 4096)}
	resultCh := make(chan error, 1)
	go func() { resultCh <- s.HandleFrame(poolFrame) }()

	time.Sleep(20 * time.Millisecond)
	s.relayMu.Lock()
	waiting := s.relayWaiting
	s.relayMu.Unlock()
	if !waiting {
		t.Fatalf("expected session to be relay-waiting after create_pool")
	}
	select {
	case <-resultCh:
		t.Fatalf("HandleFrame returned before ClearRelayWait")
	default:
	}

	if got := up.count(); got != 1 {
		t.Fatalf("upstream sends: got %d, want 1", got)
	}

	s.ClearRelayWait()
	select {
	case err := <-resultCh:
		if err != nil {
			t.Fatalf("HandleFrame after wake: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for HandleFrame to resume after ClearRelayWait")
	}
}

func TestUnknownObjectIsProtocolErrorNotFatal(t *testing.T) {
	client, server := newConnPair(t)
	defer client.Close()

	s := New(server, registry.NewGlobalsTable(), nil, testLogger())
	defer s.Close()

	frame := wire.Frame{SenderID: 999, Opcode: 0, Body: nil}
	if err := s.HandleFrame(frame); err != nil {
		t.Fatalf("HandleFrame should absorb a protocol error, got: %v", err)
	}

	msg := <-s.out
	senderID, _, opcode, err := wire.DecodeHeader(msg.data[:wire.HeaderLen])
	if err != nil {
		t.Fatalf("decode error header: %v", err)
	}
	if senderID != uint32(registry.DisplayID) || opcode != 0 {
		t.Fatalf("error event: got sender=%d opcode=%d, want sender=1 opcode=0", senderID, opcode)
	}
	if badObj := u32(msg.data, wire.HeaderLen); badObj != 999 {
		t.Fatalf("error object_id argument: got %d, want 999", badObj)
	}

	// the session must still be usable afterward.
	syncFrame := wire.Frame{SenderID: uint32(registry.DisplayID), Opcode: 0, Body: frameBody(5)}
	if err := s.HandleFrame(syncFrame); err != nil {
		t.Fatalf("session unusable after protocol error: %v", err)
	}
}

func TestDestroyedObjectRejectsFurtherRequests(t *testing.T) {
	client, server := newConnPair(t)
	defer client.Close()

	s := New(server, registry.NewGlobalsTable(), nil, testLogger())
	defer s.Close()

	if err := s.Insert(&proto.Region{ID: 5}); err != nil {
		t.Fatalf("insert region: %v", err)
	}

	// wl_region@5.destroy()
	destroyFrame := wire.Frame{SenderID: 5, Opcode: 0, Body: nil}
	if err := s.HandleFrame(destroyFrame); err != nil {
		t.Fatalf("HandleFrame(destroy): %v", err)
	}
	<-s.out // delete_id

	// a second request against the now-dead id must be invalid_object,
	// not a crash.
	if err := s.HandleFrame(destroyFrame); err != nil {
		t.Fatalf("HandleFrame after destroy should absorb protocol error, got: %v", err)
	}
	msg := <-s.out
	_, _, opcode, err := wire.DecodeHeader(msg.data[:wire.HeaderLen])
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if opcode != 0 {
		t.Fatalf("expected wl_display.error event, got opcode %d", opcode)
	}
}

func TestSetSelectionOffersClipboardStandalone(t *testing.T) {
	client, server := newConnPair(t)
	defer client.Close()

	s := New(server, registry.NewGlobalsTable(), nil, testLogger())
	defer s.Close()

	if err := s.Insert(&proto.DataDevice{ID: 2, SeatID: 1}); err != nil {
		t.Fatalf("insert data device: %v", err)
	}
	if err := s.Insert(&proto.DataSource{ID: 3, MimeTypes: []string{"text/plain"}}); err != nil {
		t.Fatalf("insert data source: %v", err)
	}

	// wl_data_device@2.set_selection(source=3, serial=1)
	frame := wire.Frame{SenderID: 2, Opcode: 1, Body: frameBody(3, 1)}
	if err := s.HandleFrame(frame); err != nil {
		t.Fatalf("HandleFrame(set_selection): %v", err)
	}

	select {
	case msg := <-s.out:
		senderID, _, opcode, err := wire.DecodeHeader(msg.data[:wire.HeaderLen])
		if err != nil {
			t.Fatalf("decode send header: %v", err)
		}
		if senderID != 3 || opcode != 1 {
			t.Fatalf("wl_data_source.send: got sender=%d opcode=%d, want sender=3 opcode=1", senderID, opcode)
		}
		for _, fd := range msg.fds {
			unix.Close(fd)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for wl_data_source.send")
	}
}

type fakeUpstream struct {
	ch chan struct{}
	n  int
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{ch: make(chan struct{}, 64)}
}

func (f *fakeUpstream) Send(senderID uint32, opcode uint16, body []byte, fds []int, wait bool) error {
	f.n++
	return nil
}

func (f *fakeUpstream) Close() error { return nil }

func (f *fakeUpstream) count() int { return f.n }
