package relay

import (
	"bytes"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/op/go-logging"

	"wayl.io/wrd/common/log"
	"wayl.io/wrd/wire"
)

type fakeSink struct {
	mu      sync.Mutex
	events  []wire.Frame
	cleared int
}

func (f *fakeSink) DeliverUpstreamEvent(senderID uint32, opcode uint16, body []byte, fds []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, wire.Frame{SenderID: senderID, Opcode: opcode, Body: body})
	return nil
}

func (f *fakeSink) ClearRelayWait() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
}

func (f *fakeSink) eventCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakeSink) clearCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleared
}

// acceptOneUnixConn starts a UNIX listener on path and returns it
// plus a channel that receives the server-side accepted conn once a
// client connects.
func acceptOneUnixConn(t *testing.T, path string) (*net.UnixListener, <-chan *net.UnixConn) {
	t.Helper()
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		t.Fatalf("ResolveUnixAddr: %v", err)
	}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		t.Fatalf("ListenUnix: %v", err)
	}
	ch := make(chan *net.UnixConn, 1)
	go func() {
		c, err := ln.AcceptUnix()
		if err == nil {
			ch <- c
		}
	}()
	return ln, ch
}

func testLogger() *logging.Logger {
	return log.SetupLogging("relay_test", logging.CRITICAL, false)
}

func TestRelaySendForwardsFrameUnmodified(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/wrd-relay-test.sock"

	ln, serverCh := acceptOneUnixConn(t, path)
	defer ln.Close()

	sink := &fakeSink{}
	r, err := Dial(path, sink, testLogger())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer r.Close()

	serverConn := <-serverCh
	defer serverConn.Close()
	serverWire, err := wire.NewConn(serverConn)
	if err != nil {
		t.Fatalf("wire.NewConn: %v", err)
	}
	defer serverWire.Close()

	if err := r.Send(10, 0, []byte{1, 2, 3, 4}, nil, false); err != nil {
		t.Fatalf("Send: %v", err)
	}

	data, _, err := serverWire.Read()
	if err != nil {
		t.Fatalf("server read: %v", err)
	}
	senderID, _, opcode, err := wire.DecodeHeader(data[:wire.HeaderLen])
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if senderID != 10 || opcode != 0 {
		t.Fatalf("got sender=%d opcode=%d, want sender=10 opcode=0", senderID, opcode)
	}
	if body := data[wire.HeaderLen:]; !bytes.Equal(body, []byte{1, 2, 3, 4}) {
		t.Fatalf("got body %v, want [1 2 3 4]", body)
	}
}

func TestRelayWaitClearedByNextUpstreamEvent(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/wrd-relay-wait-test.sock"

	ln, serverCh := acceptOneUnixConn(t, path)
	defer ln.Close()

	sink := &fakeSink{}
	r, err := Dial(path, sink, testLogger())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer r.Close()

	serverConn := <-serverCh
	defer serverConn.Close()
	serverWire, err := wire.NewConn(serverConn)
	if err != nil {
		t.Fatalf("wire.NewConn: %v", err)
	}
	defer serverWire.Close()

	if err := r.Send(10, 0, nil, nil, true); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, _, _, err := readFrameFromServer(serverWire); err != nil {
		t.Fatalf("server read of relay-wait send: %v", err)
	}

	frame, err := wire.EncodeFrame(10, 5, []byte{9, 9, 9, 9})
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	if err := serverWire.Write(frame, nil); err != nil {
		t.Fatalf("server write: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for sink.clearCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if sink.clearCount() != 1 {
		t.Fatalf("ClearRelayWait calls: got %d, want 1", sink.clearCount())
	}
	if sink.eventCount() != 1 {
		t.Fatalf("delivered events: got %d, want 1", sink.eventCount())
	}
}

func readFrameFromServer(c *wire.Conn) (uint32, uint16, []byte, error) {
	data, _, err := c.Read()
	if err != nil {
		return 0, 0, nil, err
	}
	senderID, _, opcode, err := wire.DecodeHeader(data[:wire.HeaderLen])
	return senderID, opcode, data[wire.HeaderLen:], err
}
