package wl

import (
	"wayl.io/wrd/proto"
)

const keyboardVersion = 7

const keyboardOpcodeRelease uint16 = 0

const (
	KeyboardEventKeymap    uint16 = 0
	KeyboardEventEnter     uint16 = 1
	KeyboardEventLeave     uint16 = 2
	KeyboardEventKey       uint16 = 3
	KeyboardEventModifiers uint16 = 4
	KeyboardEventRepeatInfo uint16 = 5
)

func DispatchKeyboard(ctx *proto.Context, k *proto.Keyboard, body []byte) (proto.NextAction, error) {
	if ctx.Opcode != keyboardOpcodeRelease {
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_keyboard@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, keyboardVersion)
	}
	dec := ctx.Dec
	if err := dec.Done(); err != nil {
		return proto.Nop, badArgs(ctx, err)
	}
	return proto.Relay, ctx.Engine.Destroy(k.ID)
}
