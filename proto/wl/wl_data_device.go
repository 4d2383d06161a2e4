package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const dataDeviceVersion = 3

const (
	dataDeviceOpcodeStartDrag    uint16 = 0
	dataDeviceOpcodeSetSelection uint16 = 1
	dataDeviceOpcodeRelease      uint16 = 2
)

const (
	DataDeviceEventDataOffer uint16 = 0
	DataDeviceEventEnter     uint16 = 1
	DataDeviceEventLeave     uint16 = 2
	DataDeviceEventMotion    uint16 = 3
	DataDeviceEventDrop      uint16 = 4
	DataDeviceEventSelection uint16 = 5
)

func DispatchDataDevice(ctx *proto.Context, d *proto.DataDevice, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case dataDeviceOpcodeStartDrag:
		if _, err := dec.Object(); err != nil { // source, may be null
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Object(); err != nil { // origin surface
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Object(); err != nil { // icon surface, may be null
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	case dataDeviceOpcodeSetSelection:
		sourceID, err := dec.Object() // source, may be null (0)
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // serial
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if sourceID != 0 {
			if res, ok := ctx.Engine.Get(registry.ObjectID(sourceID)); ok {
				if src, ok := res.(*proto.DataSource); ok {
					if err := ctx.Engine.OfferClipboardSelection(src.ID, src.MimeTypes); err != nil {
						return proto.Nop, err
					}
				}
			}
		}
		return proto.Relay, nil

	case dataDeviceOpcodeRelease:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(d.ID)

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_data_device@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, dataDeviceVersion)
	}
}
