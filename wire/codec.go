package wire

// Accumulator buffers raw bytes and fds read off a connection and
// splits them into complete frames, mirroring RequestStream's
// pending_bytes/pending_fds/pending_requests split: reads arrive in
// arbitrary chunks, frames are only ever emitted once their full
// length has arrived (§4.1 "partial reads").
type Accumulator struct {
	pending []byte
	fds     *FdQueue
}

func NewAccumulator() *Accumulator {
	return &Accumulator{fds: NewFdQueue()}
}

// Feed appends newly read bytes and fds to the accumulator.
func (a *Accumulator) Feed(data []byte, fds []int) {
	a.pending = append(a.pending, data...)
	a.fds.Push(fds)
}

// Next extracts one complete frame from the front of the buffered
// bytes, if one has fully arrived. ok is false (with a nil error) when
// more bytes are needed before a frame can be produced.
func (a *Accumulator) Next() (frame Frame, ok bool, err error) {
	if len(a.pending) < HeaderLen {
		return Frame{}, false, nil
	}
	senderID, totalLen, opcode, err := DecodeHeader(a.pending[:HeaderLen])
	if err != nil {
		return Frame{}, false, err
	}
	if len(a.pending) < totalLen {
		return Frame{}, false, nil
	}

	body := make([]byte, totalLen-HeaderLen)
	copy(body, a.pending[HeaderLen:totalLen])
	a.pending = a.pending[totalLen:]

	return Frame{SenderID: senderID, Opcode: opcode, Body: body}, true, nil
}

// Fds returns the FdQueue backing this accumulator's decoders, so the
// dispatcher can hand the same queue to every Decoder it constructs
// for frames drained from this connection.
func (a *Accumulator) Fds() *FdQueue {
	return a.fds
}

// Drain flushes every complete frame currently buffered; used by
// callers that prefer to pull a batch at once rather than call Next
// in a loop.
func (a *Accumulator) Drain() (frames []Frame, err error) {
	for {
		frame, ok, ferr := a.Next()
		if ferr != nil {
			return frames, ferr
		}
		if !ok {
			return frames, nil
		}
		frames = append(frames, frame)
	}
}
