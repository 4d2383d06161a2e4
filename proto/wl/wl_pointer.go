package wl

import (
	"wayl.io/wrd/proto"
)

const pointerVersion = 7

const (
	pointerOpcodeSetCursor uint16 = 0
	pointerOpcodeRelease   uint16 = 1
)

const (
	PointerEventEnter   uint16 = 0
	PointerEventLeave   uint16 = 1
	PointerEventMotion  uint16 = 2
	PointerEventButton  uint16 = 3
	PointerEventAxis    uint16 = 4
	PointerEventFrame   uint16 = 5
)

func DispatchPointer(ctx *proto.Context, p *proto.Pointer, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case pointerOpcodeSetCursor:
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Object(); err != nil { // surface, may be null
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // hotspot_x
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // hotspot_y
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case pointerOpcodeRelease:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(p.ID)

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_pointer@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, pointerVersion)
	}
}
