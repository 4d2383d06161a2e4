package persist

import (
	"path/filepath"
	"testing"
)

func TestWriteThenReadGlobalsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globals.json")

	want := []GlobalSnapshot{
		{Name: 1, Interface: "wl_compositor", Version: 4},
		{Name: 2, Interface: "wl_shm", Version: 1},
		{Name: 3, Interface: "xdg_wm_base", Version: 3},
	}
	if err := WriteGlobalsSnapshot(path, want); err != nil {
		t.Fatalf("WriteGlobalsSnapshot: %v", err)
	}

	got, err := ReadGlobalsSnapshot(path)
	if err != nil {
		t.Fatalf("ReadGlobalsSnapshot: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("snapshot length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadGlobalsSnapshotMissingFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	got, err := ReadGlobalsSnapshot(path)
	if err != nil {
		t.Fatalf("ReadGlobalsSnapshot: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", got)
	}
}
