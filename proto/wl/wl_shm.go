package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const shmVersion = 1

const shmOpcodeCreatePool uint16 = 0

// ShmEventFormat is wl_shm's only event, emitted once per supported
// pixel format in the burst triggered by binding (§4.4, SPEC_FULL §3.6).
const ShmEventFormat uint16 = 0

// DispatchShm handles wl_shm.create_pool. It is RelayWait (SPEC_FULL
// §4): the upstream must map and validate the backing fd before
// wl_shm_pool.create_buffer against it means anything.
func DispatchShm(ctx *proto.Context, s *proto.Shm, body []byte) (proto.NextAction, error) {
	if ctx.Opcode != shmOpcodeCreatePool {
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_shm@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, shmVersion)
	}

	dec := ctx.Dec
	id, err := dec.NewID()
	if err != nil {
		return proto.Nop, badArgs(ctx, err)
	}
	fd, err := dec.FD()
	if err != nil {
		return proto.Nop, badArgs(ctx, err)
	}
	size, err := dec.Int()
	if err != nil {
		return proto.Nop, badArgs(ctx, err)
	}
	if err := dec.Done(); err != nil {
		return proto.Nop, badArgs(ctx, err)
	}

	pool := &proto.ShmPool{ID: registry.ObjectID(id), Fd: fd, Size: size}
	if err := ctx.Engine.Insert(pool); err != nil {
		return proto.Nop, proto.InvalidObject(id, "wl_shm.create_pool: id %d: %v", id, err)
	}
	return proto.RelayWait, nil
}
