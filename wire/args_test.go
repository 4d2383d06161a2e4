package wire

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncoder(3, 7)
	enc.PutUint(42)
	enc.PutInt(-5)
	enc.PutFixed(256)
	enc.PutObject(9)
	enc.PutNewID(10)
	enc.PutString("hello")
	enc.PutArray([]byte{1, 2, 3})

	frame, fds, err := enc.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if len(fds) != 0 {
		t.Fatalf("unexpected fds: %s", spew.Sdump(fds))
	}

	senderID, totalLen, opcode, err := DecodeHeader(frame[:HeaderLen])
	if err != nil {
		t.Fatal(err)
	}
	if senderID != 3 || opcode != 7 || totalLen != len(frame) {
		t.Fatalf("header mismatch: %s", spew.Sdump(frame[:HeaderLen]))
	}

	dec := NewDecoder(frame[HeaderLen:], NewFdQueue())
	if v, err := dec.Uint(); err != nil || v != 42 {
		t.Fatalf("Uint: got %d, err %v", v, err)
	}
	if v, err := dec.Int(); err != nil || v != -5 {
		t.Fatalf("Int: got %d, err %v", v, err)
	}
	if v, err := dec.Fixed(); err != nil || v != 256 {
		t.Fatalf("Fixed: got %d, err %v", v, err)
	}
	if v, err := dec.Object(); err != nil || v != 9 {
		t.Fatalf("Object: got %d, err %v", v, err)
	}
	if v, err := dec.NewID(); err != nil || v != 10 {
		t.Fatalf("NewID: got %d, err %v", v, err)
	}
	if s, err := dec.String(); err != nil || s != "hello" {
		t.Fatalf("String: got %q, err %v", s, err)
	}
	if b, err := dec.Array(); err != nil || string(b) != "\x01\x02\x03" {
		t.Fatalf("Array: got %v, err %v", b, err)
	}
	if err := dec.Done(); err != nil {
		t.Fatalf("Done: %v, body=%s", err, spew.Sdump(frame[HeaderLen:]))
	}
}

func TestStringPadding(t *testing.T) {
	cases := []struct {
		s    string
		want int
	}{
		{"", 8},     // 4 (length) + length=1 (nul only) -> pad4(1) = 4 + 4
		{"a", 8},    // 4 (length) + length=2 -> pad4(2) = 4 + 4
		{"abc", 8},  // 4 (length) + length=4 -> pad4(4) = 4 + 4
		{"abcd", 12},// 4 (length) + length=5 -> pad4(5) = 4 + 8
	}
	for _, c := range cases {
		enc := NewEncoder(1, 0)
		enc.PutString(c.s)
		if len(enc.body) != c.want {
			t.Fatalf("PutString(%q): body len %d, want %d", c.s, len(enc.body), c.want)
		}
	}
}

func TestArrayPadding(t *testing.T) {
	enc := NewEncoder(1, 0)
	enc.PutArray([]byte{1, 2, 3})
	// 4 (length) + 3 (data) padded to 4 = 4 + 4 = 8
	if len(enc.body) != 8 {
		t.Fatalf("PutArray: body len %d, want 8", len(enc.body))
	}
}

func TestDecodeSurplusBody(t *testing.T) {
	enc := NewEncoder(1, 0)
	enc.PutUint(1)
	enc.PutUint(2)
	frame, _, err := enc.Finish()
	if err != nil {
		t.Fatal(err)
	}
	dec := NewDecoder(frame[HeaderLen:], nil)
	if _, err := dec.Uint(); err != nil {
		t.Fatal(err)
	}
	if err := dec.Done(); err == nil {
		t.Fatal("expected surplus body error")
	}
}

func TestDecodeShortBody(t *testing.T) {
	dec := NewDecoder([]byte{1, 2}, nil)
	if _, err := dec.Uint(); err == nil {
		t.Fatal("expected short body error")
	}
}

func TestEncodeOversizeFrame(t *testing.T) {
	enc := NewEncoder(1, 0)
	enc.body = make([]byte, MaxFrameLen)
	if _, _, err := enc.Finish(); err == nil {
		t.Fatal("expected frame-too-large error")
	}
}

func TestFdQueueOrdering(t *testing.T) {
	q := NewFdQueue()
	q.Push([]int{5, 6})
	q.Push([]int{7})
	for _, want := range []int{5, 6, 7} {
		got, err := q.Pop()
		if err != nil || got != want {
			t.Fatalf("Pop: got %d, err %v, want %d", got, err, want)
		}
	}
	if _, err := q.Pop(); err == nil {
		t.Fatal("expected empty-queue error")
	}
}
