package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const subcompositorVersion = 1

const (
	subcompositorOpcodeDestroy       uint16 = 0
	subcompositorOpcodeGetSubsurface uint16 = 1
)

func DispatchSubcompositor(ctx *proto.Context, s *proto.Subcompositor, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case subcompositorOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(s.ID)

	case subcompositorOpcodeGetSubsurface:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		surfaceID, err := dec.Object()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		parentID, err := dec.Object()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		sub := &proto.Subsurface{
			ID:        registry.ObjectID(id),
			SurfaceID: registry.ObjectID(surfaceID),
			ParentID:  registry.ObjectID(parentID),
		}
		if err := ctx.Engine.Insert(sub); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_subcompositor.get_subsurface: id %d: %v", id, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_subcompositor@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, subcompositorVersion)
	}
}
