package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const surfaceVersion = 4

const (
	surfaceOpcodeDestroy           uint16 = 0
	surfaceOpcodeAttach            uint16 = 1
	surfaceOpcodeDamage            uint16 = 2
	surfaceOpcodeFrame             uint16 = 3
	surfaceOpcodeSetOpaqueRegion   uint16 = 4
	surfaceOpcodeSetInputRegion    uint16 = 5
	surfaceOpcodeCommit            uint16 = 6
	surfaceOpcodeSetBufferTransform uint16 = 7
	surfaceOpcodeSetBufferScale    uint16 = 8
	surfaceOpcodeDamageBuffer      uint16 = 9
)

const (
	SurfaceEventEnter uint16 = 0
	SurfaceEventLeave uint16 = 1
)

// DispatchSurface handles wl_surface requests. commit is Relay
// (SPEC_FULL §4): fire-and-forget, ordering preserved by the single
// outbound queue rather than a wait. frame binds a local callback
// object and relays the request; no done event is generated locally
// for it. With an upstream attached, the upstream's own done event is
// passed through; in standalone mode none is sent.
func DispatchSurface(ctx *proto.Context, s *proto.Surface, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case surfaceOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(s.ID)

	case surfaceOpcodeAttach:
		if _, err := dec.Object(); err != nil { // buffer (may be 0 = null)
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // x
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // y
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case surfaceOpcodeDamage, surfaceOpcodeDamageBuffer:
		for i := 0; i < 4; i++ {
			if _, err := dec.Int(); err != nil {
				return proto.Nop, badArgs(ctx, err)
			}
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case surfaceOpcodeFrame:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		cb := &proto.Callback{ID: registry.ObjectID(id)}
		if err := ctx.Engine.Insert(cb); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_surface.frame: callback id %d: %v", id, err)
		}
		return proto.Relay, nil

	case surfaceOpcodeSetOpaqueRegion, surfaceOpcodeSetInputRegion:
		if _, err := dec.Object(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case surfaceOpcodeCommit:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case surfaceOpcodeSetBufferTransform:
		if _, err := dec.Int(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case surfaceOpcodeSetBufferScale:
		if _, err := dec.Int(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_surface@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, surfaceVersion)
	}
}
