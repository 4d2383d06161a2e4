// Package proto implements the per-interface dispatch tables (C3):
// one Resource variant and one opcode dispatcher per supported
// Wayland interface, plumbed against the session engine through the
// Engine interface rather than importing package session directly —
// session imports proto to drive dispatch, so proto must not import
// session back.
package proto

import (
	"wayl.io/wrd/registry"
	"wayl.io/wrd/wire"
)

// Engine is the subset of the session engine (C4) a handler needs:
// registry mutation, event emission, and server-id allocation. The
// concrete implementation is session.Session.
type Engine interface {
	// Insert binds a resource into the session's registry.
	Insert(res registry.Resource) error
	// Get looks up a bound resource.
	Get(id registry.ObjectID) (registry.Resource, bool)
	// Destroy removes a resource and emits wl_display.delete_id for
	// it (§4.4 "Destruction").
	Destroy(id registry.ObjectID) error
	// NextServerID allocates the next id in the server-reserved
	// range (§4.4 "Server-allocated IDs").
	NextServerID() registry.ObjectID
	// Globals returns the process-wide globals table.
	Globals() *registry.GlobalsTable
	// Emit enqueues one event frame on the session's outbound
	// channel (§4.4 "Outbound ordering").
	Emit(senderID uint32, opcode uint16, fn func(*wire.Encoder)) error
	// NextCallbackSerial returns the next value of the per-session
	// sync callback counter (§4.4 "wl_display.sync").
	NextCallbackSerial() uint32
	// OfferClipboardSelection mirrors a client's selection to the
	// host clipboard when running standalone (no upstream
	// compositor to hand the selection off to); a no-op when an
	// upstream is attached, since the upstream owns the selection
	// then.
	OfferClipboardSelection(sourceID registry.ObjectID, mimeTypes []string) error
}

// Context carries everything a handler needs beyond its own parsed
// arguments: which object received the request, the engine to act
// on, and the fd queue argument parsing draws from. Dec is the
// decoder the session already constructed for this frame; handlers
// parse through it (rather than building their own) so its
// accumulated canonical re-encoding (Dec.Encoded) is what the session
// forwards on Relay/RelayWait, not the raw frame bytes (§4.3 step 3).
type Context struct {
	Engine   Engine
	SenderID uint32
	Opcode   uint16
	Fds      *wire.FdQueue
	Dec      *wire.Decoder
}
