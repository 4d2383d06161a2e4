package wire

import (
	"unicode/utf8"

	"wayl.io/wrd/common/util"
)

// pad4 returns n rounded up to the next multiple of 4.
func pad4(n int) int {
	return (n + 3) &^ 3
}

// Decoder walks a frame body consuming one argument at a time, in the
// exact order the interface's opcode schema declares (§4.3 step 1).
// Fd arguments are popped from a session-level queue, not from body.
// It also accumulates a canonical re-encoding of every argument it
// parses, reachable via Encoded, so a relayed request is rebuilt from
// the parsed values rather than forwarded as raw bytes (§4.3 step 3):
// a client-supplied length or padding byte that happens to parse
// cleanly must not be passed upstream verbatim.
type Decoder struct {
	body  []byte
	pos   int
	fds   *FdQueue
	reenc []byte
}

func NewDecoder(body []byte, fds *FdQueue) *Decoder {
	return &Decoder{body: body, fds: fds}
}

func (d *Decoder) need(n int) error {
	if d.pos+n > len(d.body) {
		return util.ErrShortBody
	}
	return nil
}

// Encoded returns the canonical re-encoding of every argument parsed
// so far. Handlers that return Relay/RelayWait hand this to the
// session instead of the original frame body.
func (d *Decoder) Encoded() []byte {
	return d.reenc
}

// Uint reads a plain 32-bit value: the shared representation for
// int, uint, fixed, object and new_id (§3 "Argument types").
func (d *Decoder) Uint() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := nativeEndian.Uint32(d.body[d.pos : d.pos+4])
	d.pos += 4
	d.reenc = appendUint32(d.reenc, v)
	return v, nil
}

func (d *Decoder) Int() (int32, error) {
	v, err := d.Uint()
	return int32(v), err
}

// Fixed reads a 24.8 signed fixed-point value. The engine treats it
// as opaque 32 bits (§3): it neither validates nor interprets it.
func (d *Decoder) Fixed() (int32, error) {
	return d.Int()
}

func (d *Decoder) Object() (uint32, error) {
	return d.Uint()
}

func (d *Decoder) NewID() (uint32, error) {
	return d.Uint()
}

// String reads a length-prefixed, NUL-terminated, 4-byte-padded UTF-8
// string.
func (d *Decoder) String() (string, error) {
	n, err := d.Uint()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", util.ErrBadString
	}
	length := int(n)
	if err := d.need(pad4(length)); err != nil {
		return "", err
	}
	raw := d.body[d.pos : d.pos+length]
	if raw[length-1] != 0 {
		return "", util.ErrBadString
	}
	text := raw[:length-1]
	if !utf8.Valid(text) {
		return "", util.ErrBadString
	}
	d.pos += pad4(length)
	d.reenc = appendStringBody(d.reenc, string(text))
	return string(text), nil
}

// Array reads a length-prefixed, 4-byte-padded opaque byte array.
func (d *Decoder) Array() ([]byte, error) {
	n, err := d.Uint()
	if err != nil {
		return nil, err
	}
	length := int(n)
	if err := d.need(pad4(length)); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, d.body[d.pos:d.pos+length])
	d.pos += pad4(length)
	d.reenc = appendArrayBody(d.reenc, out)
	return out, nil
}

// FD pops the next queued file descriptor, consumed positionally in
// request order regardless of which recvmsg batch it arrived on
// (§9 "per-request fd consumption").
func (d *Decoder) FD() (int, error) {
	if d.fds == nil {
		return -1, util.ErrNoFd
	}
	return d.fds.Pop()
}

// Done verifies the parse cursor exactly consumed the body (§4.3
// step 2): neither trailing bytes nor a short read.
func (d *Decoder) Done() error {
	if d.pos < len(d.body) {
		return util.ErrSurplusBody
	}
	if d.pos > len(d.body) {
		return util.ErrShortBody
	}
	return nil
}

// Encoder accumulates an event's argument body, mirroring Decoder's
// argument shapes, and assembles the final framed+padded byte slice
// plus any fds that must ride along as SCM_RIGHTS.
type Encoder struct {
	senderID uint32
	opcode   uint16
	body     []byte
	fds      []int
}

func NewEncoder(senderID uint32, opcode uint16) *Encoder {
	return &Encoder{senderID: senderID, opcode: opcode}
}

// appendUint32 is the shared byte layout for int/uint/fixed/object/
// new_id arguments, used by both Encoder (writing events) and Decoder
// (re-encoding a canonical request body, see Decoder.Encoded).
func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	nativeEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

// appendStringBody appends s's NUL-terminated, 4-byte-padded bytes —
// everything after a string argument's length prefix, which callers
// write separately via appendUint32 (§8 invariant 2).
func appendStringBody(b []byte, s string) []byte {
	b = append(b, s...)
	b = append(b, 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// appendArrayBody appends data's 4-byte-padded bytes, no terminating
// NUL — everything after an array argument's length prefix.
func appendArrayBody(b []byte, data []byte) []byte {
	b = append(b, data...)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func (e *Encoder) PutUint(v uint32) {
	e.body = appendUint32(e.body, v)
}

func (e *Encoder) PutInt(v int32)      { e.PutUint(uint32(v)) }
func (e *Encoder) PutFixed(v int32)    { e.PutUint(uint32(v)) }
func (e *Encoder) PutObject(id uint32) { e.PutUint(id) }
func (e *Encoder) PutNewID(id uint32)  { e.PutUint(id) }

// PutString writes the length (including the terminating NUL) then
// the NUL-terminated bytes, zero-padded to 4 bytes (§8 invariant 2).
func (e *Encoder) PutString(s string) {
	e.PutUint(uint32(len(s) + 1))
	e.body = appendStringBody(e.body, s)
}

// PutArray writes the length then the raw bytes, zero-padded to 4
// bytes — no terminating NUL (§8 invariant 2).
func (e *Encoder) PutArray(b []byte) {
	e.PutUint(uint32(len(b)))
	e.body = appendArrayBody(e.body, b)
}

// PutFD queues a file descriptor to be sent as SCM_RIGHTS alongside
// this event; it does not occupy space in the body.
func (e *Encoder) PutFD(fd int) {
	e.fds = append(e.fds, fd)
}

// Finish assembles the framed byte slice and returns it with any
// fds, failing if the total length cannot fit in 16 bits (§4.1
// "oversize event").
func (e *Encoder) Finish() ([]byte, []int, error) {
	total := HeaderLen + len(e.body)
	if total > MaxFrameLen {
		return nil, nil, util.ErrFrameTooLarge
	}
	out := make([]byte, total)
	if err := EncodeHeader(out, e.senderID, total, e.opcode); err != nil {
		return nil, nil, err
	}
	copy(out[HeaderLen:], e.body)
	return out, e.fds, nil
}
