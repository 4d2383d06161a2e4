// Package version holds the engine's build/protocol version, surfaced
// by the control server the same way krd exposes CURRENT_VERSION.
package version

import "github.com/blang/semver"

// CURRENT_VERSION is the session-engine build version. It is unrelated
// to any Wayland interface version (those live in registry.Global).
var CURRENT_VERSION = semver.MustParse("0.1.0")

// WireProtocolVersion is a coarse compatibility marker for the
// handshake extension control clients may use before relying on
// behavior added after the initial release.
const WireProtocolVersion = 1
