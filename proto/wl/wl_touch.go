package wl

import (
	"wayl.io/wrd/proto"
)

const touchVersion = 7

const touchOpcodeRelease uint16 = 0

const (
	TouchEventDown   uint16 = 0
	TouchEventUp     uint16 = 1
	TouchEventMotion uint16 = 2
	TouchEventFrame  uint16 = 3
	TouchEventCancel uint16 = 4
)

func DispatchTouch(ctx *proto.Context, t *proto.Touch, body []byte) (proto.NextAction, error) {
	if ctx.Opcode != touchOpcodeRelease {
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_touch@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, touchVersion)
	}
	dec := ctx.Dec
	if err := dec.Done(); err != nil {
		return proto.Nop, badArgs(ctx, err)
	}
	return proto.Relay, ctx.Engine.Destroy(t.ID)
}
