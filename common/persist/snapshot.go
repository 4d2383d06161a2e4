// Package persist durably records small pieces of process state as
// an atomic file write via vitess's ioutil2, no database.
package persist

import (
	"encoding/json"
	"os"

	"github.com/youtube/vitess/go/ioutil2"
)

// GlobalSnapshot is the set of globals advertised at the moment the
// daemon last started, persisted so a restarted control client can
// report "what would a new session see" without dialing the socket.
type GlobalSnapshot struct {
	Name      uint32 `json:"name"`
	Interface string `json:"interface"`
	Version   uint32 `json:"version"`
}

// WriteGlobalsSnapshot atomically writes the globals table snapshot
// to path, replacing any previous contents.
func WriteGlobalsSnapshot(path string, snapshot []GlobalSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return ioutil2.WriteFileAtomic(path, data, 0644)
}

// ReadGlobalsSnapshot loads a previously written snapshot, returning
// an empty slice (not an error) if the file does not yet exist.
func ReadGlobalsSnapshot(path string) (snapshot []GlobalSnapshot, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []GlobalSnapshot{}, nil
	}
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(data, &snapshot)
	return
}
