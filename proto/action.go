package proto

// NextAction is a handler's verdict on what the session engine must
// do after the handler itself has run (§4.3 "Handlers"). It is
// returned by the handler, not decided by a static per-opcode table,
// mirroring how xdg_toplevel's generated dispatch simply forwards
// whatever each method function decides.
type NextAction int

const (
	// Nop: the handler was the only effect; the session continues
	// accepting the next request immediately.
	Nop NextAction = iota
	// Relay: forward the re-encoded request upstream, then continue
	// immediately without waiting for a reply.
	Relay
	// RelayWait: forward upstream and suspend further inbound
	// dispatch until the matching upstream reply arrives.
	RelayWait
)

func (a NextAction) String() string {
	switch a {
	case Nop:
		return "nop"
	case Relay:
		return "relay"
	case RelayWait:
		return "relay_wait"
	default:
		return "unknown"
	}
}
