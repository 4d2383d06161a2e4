// Package registry holds the per-session object map (id -> resource)
// and the process-wide globals table, mirroring the split the
// original session_state kept between object_map and the fixed
// wl_compositor/wl_shm/xdg_wm_base singletons.
package registry

// ObjectID identifies a protocol object within one session. Object
// id 1 is always wl_display (§3 "Object lifecycle").
type ObjectID uint32

const (
	DisplayID ObjectID = 1

	// ClientIDMin/ClientIDMax bound ids the client allocates.
	ClientIDMin ObjectID = 0x00000001
	ClientIDMax ObjectID = 0xfeffffff

	// ServerIDMin/ServerIDMax bound ids the server allocates for
	// events like wl_registry.global's implicit bind-target ids are
	// not server ids, but objects the server creates unprompted are
	// (§3 "Object id ranges").
	ServerIDMin ObjectID = 0xff000000
	ServerIDMax ObjectID = 0xffffffff
)

// InClientRange reports whether id falls in the band a client may
// allocate new_id arguments from.
func InClientRange(id ObjectID) bool {
	return id >= ClientIDMin && id <= ClientIDMax
}

// InServerRange reports whether id falls in the band reserved for
// server-allocated objects.
func InServerRange(id ObjectID) bool {
	return id >= ServerIDMin && id <= ServerIDMax
}

// Kind tags which interface a Resource implements, giving Dispatch a
// closed set to switch over instead of relying on dynamic type
// assertions (§3 "Resource").
type Kind int

const (
	KindDisplay Kind = iota
	KindRegistry
	KindCallback
	KindCompositor
	KindSubcompositor
	KindShm
	KindShmPool
	KindBuffer
	KindSurface
	KindSubsurface
	KindRegion
	KindSeat
	KindPointer
	KindKeyboard
	KindTouch
	KindOutput
	KindDataDeviceManager
	KindDataDevice
	KindDataSource
	KindDataOffer
	KindShell
	KindShellSurface
	KindXdgWmBase
	KindXdgPositioner
	KindXdgSurface
	KindXdgToplevel
	KindXdgPopup
)

func (k Kind) String() string {
	names := [...]string{
		"wl_display", "wl_registry", "wl_callback", "wl_compositor",
		"wl_subcompositor", "wl_shm", "wl_shm_pool", "wl_buffer",
		"wl_surface", "wl_subsurface", "wl_region", "wl_seat",
		"wl_pointer", "wl_keyboard", "wl_touch", "wl_output",
		"wl_data_device_manager", "wl_data_device", "wl_data_source",
		"wl_data_offer", "wl_shell", "wl_shell_surface", "xdg_wm_base",
		"xdg_positioner", "xdg_surface", "xdg_toplevel", "xdg_popup",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// Resource is any object bound into a session's object map. Concrete
// state lives in the proto package; registry only needs the Kind tag
// to validate deletion and answer interface-name queries.
type Resource interface {
	Kind() Kind
	ObjectID() ObjectID
}
