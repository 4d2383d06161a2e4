// Package wl implements the dispatch tables for the core wl_*
// interfaces (§4.3). Each file parses one interface's opcodes in the
// order the protocol declares them and hands parsed arguments to a
// handler that returns the session's verdict.
package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
	"wayl.io/wrd/wire"
)

const displayVersion = 1

const (
	displayOpcodeSync        uint16 = 0
	displayOpcodeGetRegistry uint16 = 1
)

const (
	// EventError and EventDeleteID are the opcodes of wl_display's
	// two events, used by every other interface file to format
	// errors and destroy notifications.
	EventError    uint16 = 0
	EventDeleteID uint16 = 1
)

// EmitError writes a wl_display.error event addressed to wl_display@1,
// the single sink every ProtocolError is converted through (§7 tier 2).
func EmitError(e proto.Engine, perr *proto.ProtocolError) error {
	return e.Emit(uint32(registry.DisplayID), EventError, func(enc *wire.Encoder) {
		enc.PutObject(perr.ObjectID)
		enc.PutUint(perr.Code)
		enc.PutString(perr.Message)
	})
}

// DispatchDisplay handles requests sent to wl_display@1.
func DispatchDisplay(ctx *proto.Context, d *proto.Display, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case displayOpcodeSync:
		callback, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Nop, handleSync(ctx, registry.ObjectID(callback))

	case displayOpcodeGetRegistry:
		regID, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Nop, handleGetRegistry(ctx, registry.ObjectID(regID))

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_display@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, displayVersion)
	}
}

// handleSync implements wl_display.sync (§4.4): the callback object
// is inserted, done is emitted with the session's callback serial,
// then it is immediately destroyed.
func handleSync(ctx *proto.Context, callbackID registry.ObjectID) error {
	cb := &proto.Callback{ID: callbackID}
	if err := ctx.Engine.Insert(cb); err != nil {
		return proto.InvalidObject(uint32(callbackID), "wl_display.sync: callback id %d: %v", callbackID, err)
	}
	serial := ctx.Engine.NextCallbackSerial()
	if err := ctx.Engine.Emit(uint32(callbackID), CallbackEventDone, func(enc *wire.Encoder) {
		enc.PutUint(serial)
	}); err != nil {
		return err
	}
	return ctx.Engine.Destroy(callbackID)
}

// handleGetRegistry implements wl_display.get_registry (§4.4): binds
// the registry object, then emits one wl_registry.global per entry in
// ascending name order.
func handleGetRegistry(ctx *proto.Context, regID registry.ObjectID) error {
	reg := &proto.Registry{ID: regID}
	if err := ctx.Engine.Insert(reg); err != nil {
		return proto.InvalidObject(uint32(regID), "wl_display.get_registry: registry id %d: %v", regID, err)
	}
	for _, g := range ctx.Engine.Globals().All() {
		if err := ctx.Engine.Emit(uint32(regID), RegistryEventGlobal, func(enc *wire.Encoder) {
			enc.PutUint(g.Name)
			enc.PutString(g.Interface)
			enc.PutUint(g.Version)
		}); err != nil {
			return err
		}
	}
	return nil
}

func badArgs(ctx *proto.Context, err error) error {
	return proto.InvalidMethod(ctx.SenderID, "@%d opcode=%d: %v", ctx.SenderID, ctx.Opcode, err)
}
