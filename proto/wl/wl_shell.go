package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const shellVersion = 1

const shellOpcodeGetShellSurface uint16 = 0

func DispatchShell(ctx *proto.Context, s *proto.Shell, body []byte) (proto.NextAction, error) {
	if ctx.Opcode != shellOpcodeGetShellSurface {
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_shell@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, shellVersion)
	}
	dec := ctx.Dec
	id, err := dec.NewID()
	if err != nil {
		return proto.Nop, badArgs(ctx, err)
	}
	surface, err := dec.Object()
	if err != nil {
		return proto.Nop, badArgs(ctx, err)
	}
	if err := dec.Done(); err != nil {
		return proto.Nop, badArgs(ctx, err)
	}
	ss := &proto.ShellSurface{ID: registry.ObjectID(id), SurfaceID: registry.ObjectID(surface)}
	if err := ctx.Engine.Insert(ss); err != nil {
		return proto.Nop, proto.InvalidObject(id, "wl_shell.get_shell_surface: id %d: %v", id, err)
	}
	return proto.Relay, nil
}
