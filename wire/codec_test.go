package wire

import "testing"

func frameBytes(t *testing.T, senderID uint32, opcode uint16, body []byte) []byte {
	t.Helper()
	enc := NewEncoder(senderID, opcode)
	enc.body = append(enc.body, body...)
	frame, _, err := enc.Finish()
	if err != nil {
		t.Fatal(err)
	}
	return frame
}

func TestAccumulatorSingleFrame(t *testing.T) {
	a := NewAccumulator()
	a.Feed(frameBytes(t, 1, 2, []byte{0, 0, 0, 0}), nil)

	frame, ok, err := a.Next()
	if err != nil || !ok {
		t.Fatalf("Next: ok=%v err=%v", ok, err)
	}
	if frame.SenderID != 1 || frame.Opcode != 2 {
		t.Fatalf("frame mismatch: %+v", frame)
	}

	if _, ok, _ := a.Next(); ok {
		t.Fatal("expected no more frames")
	}
}

func TestAccumulatorPartialRead(t *testing.T) {
	a := NewAccumulator()
	full := frameBytes(t, 1, 0, []byte{1, 2, 3, 4})

	a.Feed(full[:5], nil)
	if _, ok, err := a.Next(); ok || err != nil {
		t.Fatalf("expected not-ready, got ok=%v err=%v", ok, err)
	}

	a.Feed(full[5:], nil)
	frame, ok, err := a.Next()
	if err != nil || !ok {
		t.Fatalf("Next after completion: ok=%v err=%v", ok, err)
	}
	if len(frame.Body) != 4 {
		t.Fatalf("body len = %d, want 4", len(frame.Body))
	}
}

func TestAccumulatorMultipleFramesInOneRead(t *testing.T) {
	a := NewAccumulator()
	f1 := frameBytes(t, 1, 0, nil)
	f2 := frameBytes(t, 2, 1, []byte{9, 9, 9, 9})
	a.Feed(append(append([]byte{}, f1...), f2...), nil)

	frames, err := a.Drain()
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].SenderID != 1 || frames[1].SenderID != 2 {
		t.Fatalf("frame order wrong: %+v", frames)
	}
}

func TestAccumulatorCorruptHeader(t *testing.T) {
	a := NewAccumulator()
	bad := make([]byte, HeaderLen)
	nativeEndian.PutUint32(bad[0:4], 1)
	nativeEndian.PutUint32(bad[4:8], uint32(3)<<16) // totalLen=3 < HeaderLen
	a.Feed(bad, nil)

	if _, _, err := a.Next(); err == nil {
		t.Fatal("expected corrupt-header error")
	}
}

func TestAccumulatorFdsAttachToQueue(t *testing.T) {
	a := NewAccumulator()
	a.Feed(frameBytes(t, 1, 0, nil), []int{11, 12})

	if n := a.Fds().Len(); n != 2 {
		t.Fatalf("fd queue len = %d, want 2", n)
	}
	fd, err := a.Fds().Pop()
	if err != nil || fd != 11 {
		t.Fatalf("Pop: got %d, err %v", fd, err)
	}
}
