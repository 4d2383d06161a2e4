package wl

import (
	"wayl.io/wrd/proto"
)

const outputVersion = 4

const (
	OutputEventGeometry uint16 = 0
	OutputEventMode     uint16 = 1
	OutputEventDone     uint16 = 2
	OutputEventScale    uint16 = 3
)

// DispatchOutput has no requests in this version; any opcode is invalid.
func DispatchOutput(ctx *proto.Context, o *proto.Output, body []byte) (proto.NextAction, error) {
	return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_output@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, outputVersion)
}
