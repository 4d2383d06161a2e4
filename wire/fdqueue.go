package wire

import (
	"sync"

	"wayl.io/wrd/common/util"
)

// FdQueue holds file descriptors received out-of-band via SCM_RIGHTS,
// in arrival order, for positional consumption by Decoder.FD as the
// request body's fd-typed arguments are parsed (§9 "per-request fd
// consumption": a batch of recvmsg calls may land fds before the
// frame that references them is fully buffered).
type FdQueue struct {
	mu  sync.Mutex
	fds []int
}

func NewFdQueue() *FdQueue {
	return &FdQueue{}
}

// Push appends fds received alongside a read, most-recent batch last.
func (q *FdQueue) Push(fds []int) {
	if len(fds) == 0 {
		return
	}
	q.mu.Lock()
	q.fds = append(q.fds, fds...)
	q.mu.Unlock()
}

// Pop removes and returns the oldest queued fd.
func (q *FdQueue) Pop() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.fds) == 0 {
		return -1, util.ErrNoFd
	}
	fd := q.fds[0]
	q.fds = q.fds[1:]
	return fd, nil
}

// Len reports how many fds are currently queued, unconsumed.
func (q *FdQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fds)
}

// Snapshot returns a copy of the currently queued fds without
// consuming them, letting a caller diff before/after a dispatch to
// learn exactly which fds a single request consumed (§9 "per-request
// fd consumption") without threading a tracking list through Decoder.
func (q *FdQueue) Snapshot() []int {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]int, len(q.fds))
	copy(out, q.fds)
	return out
}

// Drain returns and clears any fds still queued — used when a
// session is torn down, so its unclaimed fds can be closed rather
// than leaked (§6 "fd lifecycle").
func (q *FdQueue) Drain() []int {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.fds
	q.fds = nil
	return out
}
