package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const compositorVersion = 4

const (
	compositorOpcodeCreateSurface uint16 = 0
	compositorOpcodeCreateRegion  uint16 = 1
)

// DispatchCompositor handles wl_compositor requests. create_surface
// is RelayWait (SPEC_FULL §4): the upstream compositor must observe
// and assign surface state before the client's next request on it is
// meaningful. create_region is purely local bookkeeping and stays Relay.
func DispatchCompositor(ctx *proto.Context, c *proto.Compositor, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case compositorOpcodeCreateSurface:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		surf := &proto.Surface{ID: registry.ObjectID(id)}
		if err := ctx.Engine.Insert(surf); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_compositor.create_surface: id %d: %v", id, err)
		}
		return proto.RelayWait, nil

	case compositorOpcodeCreateRegion:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		region := &proto.Region{ID: registry.ObjectID(id)}
		if err := ctx.Engine.Insert(region); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_compositor.create_region: id %d: %v", id, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_compositor@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, compositorVersion)
	}
}
