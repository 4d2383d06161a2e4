package registry

import (
	"sync"

	"wayl.io/wrd/common/util"
)

// Registry is one session's object map: ObjectID -> Resource. It is
// not safe to share across sessions — each session owns its own
// instance, the same single-writer shape session_state kept its
// object_map in (§4.2 "Object registry").
type Registry struct {
	mu      sync.Mutex
	objects map[ObjectID]Resource
}

func New() *Registry {
	return &Registry{objects: make(map[ObjectID]Resource)}
}

// Insert adds a resource at its own ObjectID, rejecting ids outside
// both the client and the server allocation ranges (so id 0) and ids
// already bound (§3 "new_id reuse").
func (r *Registry) Insert(res Resource) error {
	id := res.ObjectID()
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != DisplayID && !InClientRange(id) && !InServerRange(id) {
		return util.ErrObjectIDOutOfRange
	}
	if _, exists := r.objects[id]; exists {
		return util.ErrObjectIDInUse
	}
	r.objects[id] = res
	return nil
}

// Get looks up a bound resource by id.
func (r *Registry) Get(id ObjectID) (Resource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.objects[id]
	return res, ok
}

// Remove deletes a resource, returning false if it was not bound.
// Callers are responsible for emitting wl_display.delete_id
// afterward (§3 "Object destruction").
func (r *Registry) Remove(id ObjectID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.objects[id]; !ok {
		return false
	}
	delete(r.objects, id)
	return true
}

// Len reports how many objects are currently bound, display object
// included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.objects)
}

// Each calls fn once per bound resource, in no particular order. fn
// must not call back into Registry.
func (r *Registry) Each(fn func(ObjectID, Resource)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, res := range r.objects {
		fn(id, res)
	}
}
