package wl

import (
	"wayl.io/wrd/proto"
)

const regionVersion = 1

const (
	regionOpcodeDestroy  uint16 = 0
	regionOpcodeAdd      uint16 = 1
	regionOpcodeSubtract uint16 = 2
)

func DispatchRegion(ctx *proto.Context, r *proto.Region, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case regionOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(r.ID)

	case regionOpcodeAdd, regionOpcodeSubtract:
		for i := 0; i < 4; i++ {
			if _, err := dec.Int(); err != nil {
				return proto.Nop, badArgs(ctx, err)
			}
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_region@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, regionVersion)
	}
}
