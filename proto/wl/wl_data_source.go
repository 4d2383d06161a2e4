package wl

import (
	"wayl.io/wrd/proto"
)

const dataSourceVersion = 3

const (
	dataSourceOpcodeOffer      uint16 = 0
	dataSourceOpcodeDestroy    uint16 = 1
	dataSourceOpcodeSetActions uint16 = 2
)

const (
	DataSourceEventTarget           uint16 = 0
	DataSourceEventSend             uint16 = 1
	DataSourceEventCancelled        uint16 = 2
	DataSourceEventDndDropPerformed uint16 = 3
	DataSourceEventDndFinished      uint16 = 4
	DataSourceEventAction           uint16 = 5
)

func DispatchDataSource(ctx *proto.Context, s *proto.DataSource, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case dataSourceOpcodeOffer:
		mimeType, err := dec.String()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		s.MimeTypes = append(s.MimeTypes, mimeType)
		return proto.Relay, nil

	case dataSourceOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(s.ID)

	case dataSourceOpcodeSetActions:
		if _, err := dec.Uint(); err != nil { // dnd_actions bitmask
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_data_source@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, dataSourceVersion)
	}
}
