// Package xdgshell implements the dispatch tables for the xdg_shell
// extension interfaces, grounded on the same opcode ordering and
// argument-error-to-wl_display.error conversion pattern as the core
// wl_* interfaces in proto/wl.
package xdgshell

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
	"wayl.io/wrd/wire"
)

const wmBaseVersion = 3

const (
	wmBaseOpcodeDestroy          uint16 = 0
	wmBaseOpcodeCreatePositioner uint16 = 1
	wmBaseOpcodeGetXdgSurface    uint16 = 2
	wmBaseOpcodePong             uint16 = 3
)

// XdgWmBaseEventPing is xdg_wm_base's sole event.
const XdgWmBaseEventPing uint16 = 0

func badArgs(ctx *proto.Context, err error) error {
	return proto.InvalidMethod(ctx.SenderID, "@%d opcode=%d: %v", ctx.SenderID, ctx.Opcode, err)
}

// DispatchXdgWmBase handles xdg_wm_base requests. get_xdg_surface is
// RelayWait (SPEC_FULL §4): the role object must exist upstream
// before the client's next request against it (get_toplevel or
// get_popup) can be resolved.
func DispatchXdgWmBase(ctx *proto.Context, x *proto.XdgWmBase, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case wmBaseOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(x.ID)

	case wmBaseOpcodeCreatePositioner:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		pos := &proto.XdgPositioner{ID: registry.ObjectID(id)}
		if err := ctx.Engine.Insert(pos); err != nil {
			return proto.Nop, proto.InvalidObject(id, "xdg_wm_base.create_positioner: id %d: %v", id, err)
		}
		return proto.Relay, nil

	case wmBaseOpcodeGetXdgSurface:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		surface, err := dec.Object()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		xs := &proto.XdgSurface{ID: registry.ObjectID(id), SurfaceID: registry.ObjectID(surface)}
		if err := ctx.Engine.Insert(xs); err != nil {
			return proto.Nop, proto.InvalidObject(id, "xdg_wm_base.get_xdg_surface: id %d: %v", id, err)
		}
		return proto.RelayWait, nil

	case wmBaseOpcodePong:
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "xdg_wm_base@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, wmBaseVersion)
	}
}

// EmitPing writes an xdg_wm_base.ping event carrying serial to the
// xdg_wm_base object wmBaseID.
func EmitPing(e proto.Engine, wmBaseID uint32, serial uint32) error {
	return e.Emit(wmBaseID, XdgWmBaseEventPing, func(enc *wire.Encoder) {
		enc.PutUint(serial)
	})
}
