package xdgshell

import (
	"wayl.io/wrd/proto"
)

const popupVersion = 3

const (
	popupOpcodeDestroy    uint16 = 0
	popupOpcodeGrab       uint16 = 1
	popupOpcodeReposition uint16 = 2
)

const (
	XdgPopupEventConfigure   uint16 = 0
	XdgPopupEventPopupDone   uint16 = 1
	XdgPopupEventRepositioned uint16 = 2
)

func DispatchXdgPopup(ctx *proto.Context, p *proto.XdgPopup, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case popupOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(p.ID)

	case popupOpcodeGrab:
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

	case popupOpcodeReposition:
		if _, err := dec.Object(); err != nil { // positioner
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // token
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "xdg_popup@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, popupVersion)
	}
}
