package wl

import (
	"wayl.io/wrd/proto"
)

const subsurfaceVersion = 1

const (
	subsurfaceOpcodeDestroy     uint16 = 0
	subsurfaceOpcodeSetPosition uint16 = 1
	subsurfaceOpcodePlaceAbove  uint16 = 2
	subsurfaceOpcodePlaceBelow  uint16 = 3
	subsurfaceOpcodeSetSync     uint16 = 4
	subsurfaceOpcodeSetDesync   uint16 = 5
)

func DispatchSubsurface(ctx *proto.Context, s *proto.Subsurface, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case subsurfaceOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(s.ID)

	case subsurfaceOpcodeSetPosition:
		if _, err := dec.Int(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case subsurfaceOpcodePlaceAbove, subsurfaceOpcodePlaceBelow:
		if _, err := dec.Object(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case subsurfaceOpcodeSetSync, subsurfaceOpcodeSetDesync:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_subsurface@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, subsurfaceVersion)
	}
}
