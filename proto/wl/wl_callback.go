package wl

import (
	"wayl.io/wrd/proto"
)

// CallbackEventDone is wl_callback's sole event. wl_callback has no
// requests and version 1 only.
const CallbackEventDone uint16 = 0

// DispatchCallback handles (nonexistent) requests to wl_callback — a
// client sending anything here is always invalid_method, since the
// interface defines no requests at all.
func DispatchCallback(ctx *proto.Context, c *proto.Callback, body []byte) (proto.NextAction, error) {
	return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_callback@%d has no requests (opcode=%d)", ctx.SenderID, ctx.Opcode)
}
