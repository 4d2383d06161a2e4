package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const dataDeviceManagerVersion = 3

const (
	dataDeviceManagerOpcodeCreateDataSource uint16 = 0
	dataDeviceManagerOpcodeGetDataDevice    uint16 = 1
)

// DispatchDataDeviceManager handles wl_data_device_manager requests.
// create_data_source is RelayWait (SPEC_FULL §4): the client blocks
// until the upstream has acknowledged the new source exists, since a
// relayed set_selection immediately following it depends on the id
// being live upstream.
func DispatchDataDeviceManager(ctx *proto.Context, m *proto.DataDeviceManager, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case dataDeviceManagerOpcodeCreateDataSource:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		src := &proto.DataSource{ID: registry.ObjectID(id)}
		if err := ctx.Engine.Insert(src); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_data_device_manager.create_data_source: id %d: %v", id, err)
		}
		return proto.RelayWait, nil

	case dataDeviceManagerOpcodeGetDataDevice:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		seat, err := dec.Object()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		dev := &proto.DataDevice{ID: registry.ObjectID(id), SeatID: registry.ObjectID(seat)}
		if err := ctx.Engine.Insert(dev); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_data_device_manager.get_data_device: id %d: %v", id, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_data_device_manager@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, dataDeviceManagerVersion)
	}
}
