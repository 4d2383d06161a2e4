package xdgshell

import (
	"wayl.io/wrd/proto"
)

const positionerVersion = 3

const (
	positionerOpcodeDestroy               uint16 = 0
	positionerOpcodeSetSize               uint16 = 1
	positionerOpcodeSetAnchorRect         uint16 = 2
	positionerOpcodeSetAnchor             uint16 = 3
	positionerOpcodeSetGravity            uint16 = 4
	positionerOpcodeSetConstraintAdjustment uint16 = 5
	positionerOpcodeSetOffset             uint16 = 6
	positionerOpcodeSetReactive           uint16 = 7
	positionerOpcodeSetParentSize         uint16 = 8
	positionerOpcodeSetParentConfigure    uint16 = 9
)

func DispatchXdgPositioner(ctx *proto.Context, p *proto.XdgPositioner, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case positionerOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(p.ID)

	case positionerOpcodeSetSize:
		width, err := dec.Int()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		height, err := dec.Int()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		p.Width = width
		p.Height = height
		return proto.Relay, nil

	case positionerOpcodeSetAnchorRect:
		for i := 0; i < 4; i++ { // x, y, width, height
			if _, err := dec.Int(); err != nil {
				return proto.Nop, badArgs(ctx, err)
			}
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case positionerOpcodeSetAnchor, positionerOpcodeSetGravity, positionerOpcodeSetConstraintAdjustment:
		if _, err := dec.Uint(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case positionerOpcodeSetOffset:
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

	case positionerOpcodeSetReactive:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case positionerOpcodeSetParentSize:
		if _, err := dec.Int(); err != nil { // parent_width
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // parent_height
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case positionerOpcodeSetParentConfigure:
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "xdg_positioner@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, positionerVersion)
	}
}
