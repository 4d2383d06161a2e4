package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
	"wayl.io/wrd/wire"
)

const registryVersion = 1

const registryOpcodeBind uint16 = 0

const (
	RegistryEventGlobal       uint16 = 0
	RegistryEventGlobalRemove uint16 = 1
)

// shmFormatArgb8888 and shmFormatXrgb8888 are the two pixel formats
// wl_shm always advertises on bind (§4.4, SPEC_FULL §3.6).
const (
	shmFormatArgb8888 uint32 = 0
	shmFormatXrgb8888 uint32 = 1
)

// DispatchRegistry handles wl_registry.bind in both of its wire
// forms (§4.4, §9): form A is an 8-byte body (name, id); form B adds
// an interface string and version between them, disambiguated by
// body length per the spec's explicit instruction that a
// single-form implementation is incorrect.
func DispatchRegistry(ctx *proto.Context, r *proto.Registry, body []byte) (proto.NextAction, error) {
	if ctx.Opcode != registryOpcodeBind {
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_registry@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, registryVersion)
	}

	if len(body) == 8 {
		return proto.Nop, bindFormA(ctx, body)
	}
	return proto.Nop, bindFormB(ctx, body)
}

func bindFormA(ctx *proto.Context, body []byte) error {
	dec := ctx.Dec
	name, err := dec.Uint()
	if err != nil {
		return badArgs(ctx, err)
	}
	id, err := dec.NewID()
	if err != nil {
		return badArgs(ctx, err)
	}
	if err := dec.Done(); err != nil {
		return badArgs(ctx, err)
	}
	return bind(ctx, name, registry.ObjectID(id))
}

func bindFormB(ctx *proto.Context, body []byte) error {
	dec := ctx.Dec
	name, err := dec.Uint()
	if err != nil {
		return badArgs(ctx, err)
	}
	iface, err := dec.String()
	if err != nil {
		return badArgs(ctx, err)
	}
	version, err := dec.Uint()
	if err != nil {
		return badArgs(ctx, err)
	}
	id, err := dec.NewID()
	if err != nil {
		return badArgs(ctx, err)
	}
	if err := dec.Done(); err != nil {
		return badArgs(ctx, err)
	}

	global, lookupErr := ctx.Engine.Globals().ByName(name)
	if lookupErr == nil && global.Interface != iface {
		return proto.InvalidObject(name, "wl_registry.bind: name %d is %q, not requested %q", name, global.Interface, iface)
	}
	if lookupErr == nil && version > global.Version {
		return proto.InvalidObject(name, "wl_registry.bind: requested version %d exceeds global version %d", version, global.Version)
	}
	return bind(ctx, name, registry.ObjectID(id))
}

// bind looks up the global by name and installs the corresponding
// singleton resource into the session registry under id, triggering
// any advertisement burst the interface requires (§4.4).
func bind(ctx *proto.Context, name uint32, id registry.ObjectID) error {
	global, err := ctx.Engine.Globals().ByName(name)
	if err != nil {
		return proto.InvalidObject(name, "wl_registry.bind: unknown global name %d", name)
	}

	var res registry.Resource
	switch global.Interface {
	case "wl_compositor":
		res = &proto.Compositor{ID: id}
	case "wl_subcompositor":
		res = &proto.Subcompositor{ID: id}
	case "wl_shm":
		res = &proto.Shm{ID: id}
	case "xdg_wm_base":
		res = &proto.XdgWmBase{ID: id}
	case "wl_seat":
		res = &proto.Seat{ID: id}
	case "wl_output":
		res = &proto.Output{ID: id}
	case "wl_data_device_manager":
		res = &proto.DataDeviceManager{ID: id}
	case "wl_shell":
		res = &proto.Shell{ID: id}
	default:
		return proto.InvalidObject(name, "wl_registry.bind: no handler for interface %q", global.Interface)
	}

	if err := ctx.Engine.Insert(res); err != nil {
		return proto.InvalidObject(uint32(id), "wl_registry.bind: id %d: %v", id, err)
	}

	switch global.Interface {
	case "wl_shm":
		for _, format := range []uint32{shmFormatArgb8888, shmFormatXrgb8888} {
			if err := ctx.Engine.Emit(uint32(id), ShmEventFormat, func(enc *wire.Encoder) {
				enc.PutUint(format)
			}); err != nil {
				return err
			}
		}
	case "wl_seat":
		caps := seatCapabilityPointer | seatCapabilityKeyboard | seatCapabilityTouch
		if err := ctx.Engine.Emit(uint32(id), SeatEventCapabilities, func(enc *wire.Encoder) {
			enc.PutUint(caps)
		}); err != nil {
			return err
		}
		if err := ctx.Engine.Emit(uint32(id), SeatEventName, func(enc *wire.Encoder) {
			enc.PutString(seatName)
		}); err != nil {
			return err
		}
	}
	return nil
}
