package wl

import (
	"wayl.io/wrd/proto"
)

const dataOfferVersion = 3

const (
	dataOfferOpcodeAccept     uint16 = 0
	dataOfferOpcodeReceive    uint16 = 1
	dataOfferOpcodeDestroy    uint16 = 2
	dataOfferOpcodeFinish     uint16 = 3
	dataOfferOpcodeSetActions uint16 = 4
)

const (
	DataOfferEventOffer         uint16 = 0
	DataOfferEventSourceActions uint16 = 1
	DataOfferEventAction        uint16 = 2
)

func DispatchDataOffer(ctx *proto.Context, o *proto.DataOffer, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case dataOfferOpcodeAccept:
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.String(); err != nil { // mime_type; empty is accepted, null (length 0) is rejected
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case dataOfferOpcodeReceive:
		if _, err := dec.String(); err != nil { // mime_type
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.FD(); err != nil { // fd
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case dataOfferOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(o.ID)

	case dataOfferOpcodeFinish:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case dataOfferOpcodeSetActions:
		if _, err := dec.Uint(); err != nil { // dnd_actions
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // preferred_action
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_data_offer@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, dataOfferVersion)
	}
}
