package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const seatVersion = 7

const (
	seatOpcodeGetPointer  uint16 = 0
	seatOpcodeGetKeyboard uint16 = 1
	seatOpcodeGetTouch    uint16 = 2
	seatOpcodeRelease     uint16 = 3
)

const (
	SeatEventCapabilities uint16 = 0
	SeatEventName         uint16 = 1
)

// Capability bitmask values for wl_seat.capabilities (§4.4): set bits
// indicate devices present on the seat.
const (
	seatCapabilityPointer  uint32 = 1
	seatCapabilityKeyboard uint32 = 2
	seatCapabilityTouch    uint32 = 4
)

// seatName is the value every wl_seat.name burst advertises; wrd
// exposes exactly one seat per session, so it needs no disambiguation
// from others.
const seatName = "seat0"

func DispatchSeat(ctx *proto.Context, s *proto.Seat, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case seatOpcodeGetPointer:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		p := &proto.Pointer{ID: registry.ObjectID(id)}
		if err := ctx.Engine.Insert(p); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_seat.get_pointer: id %d: %v", id, err)
		}
		return proto.Relay, nil

	case seatOpcodeGetKeyboard:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		k := &proto.Keyboard{ID: registry.ObjectID(id)}
		if err := ctx.Engine.Insert(k); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_seat.get_keyboard: id %d: %v", id, err)
		}
		return proto.Relay, nil

	case seatOpcodeGetTouch:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		t := &proto.Touch{ID: registry.ObjectID(id)}
		if err := ctx.Engine.Insert(t); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_seat.get_touch: id %d: %v", id, err)
		}
		return proto.Relay, nil

	case seatOpcodeRelease:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(s.ID)

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_seat@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, seatVersion)
	}
}
