package wl

import (
	"wayl.io/wrd/proto"
	"wayl.io/wrd/registry"
)

const shmPoolVersion = 1

const (
	shmPoolOpcodeCreateBuffer uint16 = 0
	shmPoolOpcodeDestroy      uint16 = 1
	shmPoolOpcodeResize       uint16 = 2
)

// DispatchShmPool handles wl_shm_pool requests. create_buffer is
// RelayWait (SPEC_FULL §4): upstream validates format/stride/offset
// against the pool before the buffer id is safe to attach.
func DispatchShmPool(ctx *proto.Context, p *proto.ShmPool, body []byte) (proto.NextAction, error) {
	dec := ctx.Dec

	switch ctx.Opcode {
	case shmPoolOpcodeCreateBuffer:
		id, err := dec.NewID()
		if err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // offset
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // width
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // height
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Int(); err != nil { // stride
			return proto.Nop, badArgs(ctx, err)
		}
		if _, err := dec.Uint(); err != nil { // format
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		buf := &proto.Buffer{ID: registry.ObjectID(id), PoolID: p.ID}
		if err := ctx.Engine.Insert(buf); err != nil {
			return proto.Nop, proto.InvalidObject(id, "wl_shm_pool.create_buffer: id %d: %v", id, err)
		}
		return proto.RelayWait, nil

	case shmPoolOpcodeDestroy:
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, ctx.Engine.Destroy(p.ID)

	case shmPoolOpcodeResize:
		if _, err := dec.Int(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		if err := dec.Done(); err != nil {
			return proto.Nop, badArgs(ctx, err)
		}
		return proto.Relay, nil

	default:
		return proto.Nop, proto.InvalidMethod(ctx.SenderID, "wl_shm_pool@%d opcode=%d not found (version %d)", ctx.SenderID, ctx.Opcode, shmPoolVersion)
	}
}
