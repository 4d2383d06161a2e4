package log

import (
	"crypto/sha256"

	"github.com/keybase/saltpack/encoding/basex"
	"github.com/satori/go.uuid"
)

// ShortTag renders a connection's correlation UUID as a short base62
// tag for log prefixes, the same way ssh_agent.go base62-encodes a
// signature hash for its notification prefix.
func ShortTag(id uuid.UUID) string {
	sum := sha256.Sum256(id.Bytes())
	return basex.Base62StdEncoding.EncodeToString(sum[:])[:8]
}
