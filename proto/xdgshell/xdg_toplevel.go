package xdgshell

import (
	"wayl.io/wrd/proto"
)

const toplevelVersion = 3

const (
	toplevelOpcodeDestroy         uint16 = 0
	toplevelOpcodeSetParent       uint16 = 1
	toplevelOpcodeSetTitle        uint16 = 2
	toplevelOpcodeSetAppID        uint16 = 3
	toplevelOpcodeShowWindowMenu  uint16 = 4
	toplevelOpcodeMove            uint16 = 5
	toplevelOpcodeResize          uint16 = 6
	toplevelOpcodeSetMaxSize      uint16 = 7
	toplevelOpcodeSetMinSize      uint16 = 8
	toplevelOpcodeSetMaximized    uint16 = 9
	toplevelOpcodeUnsetMaximized  uint16 = 10
	toplevelOpcodeSetFullscreen   uint16 = 11
	toplevelOpcodeUnsetFullscreen uint16 = 12
	toplevelOpcodeSetMinimized    uint16 = 13
)

const (
	XdgToplevelEventConfigure uint16 = 0
	XdgToplevelEventClose     uint16 = 1
)

func DispatchXdgToplevel(ctx *proto.Context, t *proto.XdgToplevel, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case toplevelOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(t.ID)

	case toplevelOpcodeSetParent:
		if _, err := dec.Object(); err != nil { // parent, may be null
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case toplevelOpcodeSetTitle, toplevelOpcodeSetAppID:
		if _, err := dec.String(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case toplevelOpcodeShowWindowMenu:
		if _, err := dec.Object(); err != nil { // seat
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // serial
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

	case toplevelOpcodeMove:
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

	case toplevelOpcodeResize:
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

	case toplevelOpcodeSetMaxSize, toplevelOpcodeSetMinSize:
		if _, err := dec.Int(); err != nil { // width
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // height
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case toplevelOpcodeSetMaximized, toplevelOpcodeUnsetMaximized,
		toplevelOpcodeUnsetFullscreen, toplevelOpcodeSetMinimized:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case toplevelOpcodeSetFullscreen:
		if _, err := dec.Object(); err != nil { // output, may be null
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "xdg_toplevel@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, toplevelVersion)
	}
}
