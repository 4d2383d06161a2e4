package wl

import (
	"wayl.io/wrd/proto"
)

const shellSurfaceVersion = 1

const (
	shellSurfaceOpcodePong          uint16 = 0
	shellSurfaceOpcodeMove          uint16 = 1
	shellSurfaceOpcodeResize        uint16 = 2
	shellSurfaceOpcodeSetToplevel   uint16 = 3
	shellSurfaceOpcodeSetTransient  uint16 = 4
	shellSurfaceOpcodeSetFullscreen uint16 = 5
	shellSurfaceOpcodeSetPopup      uint16 = 6
	shellSurfaceOpcodeSetMaximized  uint16 = 7
	shellSurfaceOpcodeSetTitle      uint16 = 8
	shellSurfaceOpcodeSetClass      uint16 = 9
)

const (
	ShellSurfaceEventPing      uint16 = 0
	ShellSurfaceEventConfigure uint16 = 1
	ShellSurfaceEventPopupDone uint16 = 2
)

func DispatchShellSurface(ctx *proto.Context, s *proto.ShellSurface, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case shellSurfaceOpcodePong:
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case shellSurfaceOpcodeMove:
		if _, err := dec.Object(); err != nil { // seat
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case shellSurfaceOpcodeResize:
		if _, err := dec.Object(); err != nil { // seat
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // edges
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case shellSurfaceOpcodeSetToplevel:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case shellSurfaceOpcodeSetTransient:
		if _, err := dec.Object(); err != nil { // parent
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // x
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // y
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // flags
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case shellSurfaceOpcodeSetFullscreen:
		if _, err := dec.Uint(); err != nil { // method
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // framerate
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Object(); err != nil { // output, may be null
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case shellSurfaceOpcodeSetPopup:
		if _, err := dec.Object(); err != nil { // seat
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Object(); err != nil { // parent
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // x
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // y
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // flags
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case shellSurfaceOpcodeSetMaximized:
		if _, err := dec.Object(); err != nil { // output, may be null
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case shellSurfaceOpcodeSetTitle:
		if _, err := dec.String(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case shellSurfaceOpcodeSetClass:
		if _, err := dec.String(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_shell_surface@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, shellSurfaceVersion)
	}
}
