package wl

import (
	"wayl.io/wrd/proto"
)

const bufferVersion = 1

const bufferOpcodeDestroy uint16 = 0

// BufferEventRelease is wl_buffer's sole event.
const BufferEventRelease uint16 = 0

func DispatchBuffer(ctx *proto.Context, b *proto.Buffer, body []byte) (proto.NextAction, error) {
	if ctx.Opcode != bufferOpcodeDestroy {
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_buffer@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, bufferVersion)
	}
	dec := ctx.Dec
	if err := dec.Done(); err != nil {
		return proto.Nop, badArgs(ctx, err)
	}
	return proto.Relay, ctx.Engine.Destroy(b.ID)
}
