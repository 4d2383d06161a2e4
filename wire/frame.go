// Package wire implements the Wayland wire format: an 8-byte header
// (sender object ID + packed length/opcode) followed by a
// 4-byte-aligned argument body, plus the out-of-band file descriptors
// that ride alongside it as SCM_RIGHTS ancillary data.
//
// All integers are host byte order, matching libwayland.
package wire

import (
	"encoding/binary"

	"wayl.io/wrd/common/util"
)

const (
	// HeaderLen is the fixed 8-byte frame header: sender object id
	// (u32) then packed length<<16|opcode (u32).
	HeaderLen = 8
	// MaxFrameLen is the 16-bit wire length cap (§3, §6).
	MaxFrameLen = 0xFFFF
)

// Frame is one decoded request or event: a sender object ID, an
// opcode, and the raw argument body. Fds consumed while parsing the
// body are not part of Frame — they live in the session-level FdQueue
// (§9 "per-request fd consumption").
type Frame struct {
	SenderID uint32
	Opcode   uint16
	Body     []byte
}

// TotalLen is the on-wire length this frame would occupy, header
// included.
func (f Frame) TotalLen() int {
	return HeaderLen + len(f.Body)
}

// nativeEndian is the host's native byte order — the wire format is
// host-endian by design (it is only ever exchanged between processes
// on the same machine).
var nativeEndian = binary.NativeEndian

// DecodeHeader validates and splits an 8-byte header into the packed
// sender ID, total length, and opcode. It never consumes body bytes.
func DecodeHeader(header []byte) (senderID uint32, totalLen int, opcode uint16, err error) {
	if len(header) < HeaderLen {
		err = util.ErrShortBody
		return
	}
	senderID = nativeEndian.Uint32(header[0:4])
	packed := nativeEndian.Uint32(header[4:8])
	totalLen = int(packed >> 16)
	opcode = uint16(packed & 0xFFFF)
	if totalLen < HeaderLen || totalLen > MaxFrameLen {
		err = util.ErrCorruptHeader
	}
	return
}

// EncodeFrame assembles a full frame from already-encoded argument
// bytes, for callers (relay.Send, session.DeliverUpstreamEvent) that
// forward an existing body as-is rather than building it via Encoder.
func EncodeFrame(senderID uint32, opcode uint16, body []byte) ([]byte, error) {
	total := HeaderLen + len(body)
	out := make([]byte, total)
	if err := EncodeHeader(out, senderID, total, opcode); err != nil {
		return nil, err
	}
	copy(out[HeaderLen:], body)
	return out, nil
}

// EncodeHeader writes the packed header for a frame of the given
// total length (header included) and opcode into dst[0:8].
func EncodeHeader(dst []byte, senderID uint32, totalLen int, opcode uint16) error {
	if totalLen < HeaderLen || totalLen > MaxFrameLen {
		return util.ErrFrameTooLarge
	}
	nativeEndian.PutUint32(dst[0:4], senderID)
	nativeEndian.PutUint32(dst[4:8], uint32(totalLen<<16)|uint32(opcode))
	return nil
}
