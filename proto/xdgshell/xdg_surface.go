package xdgshell

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const xdgSurfaceVersion = 3

const (
	xdgSurfaceOpcodeDestroy           uint16 = 0
	xdgSurfaceOpcodeGetToplevel       uint16 = 1
	xdgSurfaceOpcodeGetPopup          uint16 = 2
	xdgSurfaceOpcodeSetWindowGeometry uint16 = 3
	xdgSurfaceOpcodeAckConfigure      uint16 = 4
)

// XdgSurfaceEventConfigure is xdg_surface's sole event.
const XdgSurfaceEventConfigure uint16 = 0

// DispatchXdgSurface handles xdg_surface requests. get_toplevel and
// get_popup are both RelayWait (SPEC_FULL §4): each promotes the
// surface to a role and the client typically issues a commit
// immediately after, which depends on the role object already
// existing upstream.
func DispatchXdgSurface(ctx *proto.Context, x *proto.XdgSurface, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case xdgSurfaceOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(x.ID)

	case xdgSurfaceOpcodeGetToplevel:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		tl := &proto.XdgToplevel{ID: registry.ObjectID(id), XdgSurfaceID: x.ID}
		if err := ctx.Engine.Insert(tl); err != nil {
			return proto.Nop, proto.InvalidObject(id, "xdg_surface.get_toplevel: id %d: %v", id, err)
		}
		x.RoleID = tl.ID
		x.HasRole = true
		return proto.RelayWait, nil

	case xdgSurfaceOpcodeGetPopup:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		parent, err := dec.Object() // may be null
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		positioner, err := dec.Object()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		_ = positioner
		pop := &proto.XdgPopup{ID: registry.ObjectID(id), XdgSurfaceID: x.ID, ParentID: registry.ObjectID(parent)}
		if err := ctx.Engine.Insert(pop); err != nil {
			return proto.Nop, proto.InvalidObject(id, "xdg_surface.get_popup: id %d: %v", id, err)
		}
		x.RoleID = pop.ID
		x.HasRole = true
		return proto.RelayWait, nil

	case xdgSurfaceOpcodeSetWindowGeometry:
		for i := 0; i < 4; i++ { // x, y, width, height
			if _, err := dec.Int(); err != nil {
				return proto.Nop, badArgs(ctx, err)
			}
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case xdgSurfaceOpcodeAckConfigure:
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "xdg_surface@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, xdgSurfaceVersion)
	}
}
