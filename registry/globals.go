package registry

import (
	"sync"

	"wayl.io/wrd/common/util"
)

// Global is one entry of the process-wide advertisement table that
// wl_registry.global events are generated from.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// GlobalsTable is the read-mostly, process-wide singleton registry
// of bindable interfaces, seeded once at daemon startup and shared
// read-only by every session thereafter (§3 "Globals"). The original
// kept this as three separate RwLock<T> singletons on SessionState;
// wrd consolidates them into one ordered table so wl_registry.bind
// can validate against any of them uniformly.
type GlobalsTable struct {
	mu      sync.RWMutex
	globals []Global
	byName  map[uint32]Global
}

// NewGlobalsTable seeds the table with wl_compositor, wl_shm and
// xdg_wm_base in that fixed ascending-name order, matching the
// startup sequence wl_display.rs established.
func NewGlobalsTable() *GlobalsTable {
	t := &GlobalsTable{byName: make(map[uint32]Global)}
	t.seed([]Global{
		{Name: 1, Interface: "wl_compositor", Version: 4},
		{Name: 2, Interface: "wl_shm", Version: 1},
		{Name: 3, Interface: "xdg_wm_base", Version: 3},
	})
	return t
}

func (t *GlobalsTable) seed(globals []Global) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, g := range globals {
		t.globals = append(t.globals, g)
		t.byName[g.Name] = g
	}
}

// Add registers an additional global beyond the three fixed startup
// globals, naming it one past the current number of globals.
func (t *GlobalsTable) Add(interfaceName string, version uint32) Global {
	t.mu.Lock()
	defer t.mu.Unlock()
	name := uint32(len(t.globals) + 1)
	g := Global{Name: name, Interface: interfaceName, Version: version}
	t.globals = append(t.globals, g)
	t.byName[name] = g
	return g
}

// All returns a snapshot of every global, in the order they were
// registered — the order wl_registry.global events must be emitted
// in when a client does get_registry (§3 "wl_registry").
func (t *GlobalsTable) All() []Global {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Global, len(t.globals))
	copy(out, t.globals)
	return out
}

// ByName looks up a global by its advertised name, as wl_registry.bind
// must before creating the bound object (§4.3 "wl_registry.bind").
func (t *GlobalsTable) ByName(name uint32) (Global, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	g, ok := t.byName[name]
	if !ok {
		return Global{}, util.ErrUnknownGlobal
	}
	return g, nil
}
