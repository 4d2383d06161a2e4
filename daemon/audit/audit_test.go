package audit

import (
	"testing"
	"time"
)

func TestRecordOpenAndClose(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	opened := time.Unix(1000, 0)
	if err := store.RecordOpen("sess-1", "[abcd1234]", opened); err != nil {
		t.Fatalf("RecordOpen: %v", err)
	}

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Recent: got %d rows, want 1", len(recent))
	}
	if recent[0].ClosedAt != nil {
		t.Fatalf("expected an open session to have a nil ClosedAt")
	}

	closed := opened.Add(5 * time.Second)
	if err := store.RecordClose("sess-1", closed, "client disconnected"); err != nil {
		t.Fatalf("RecordClose: %v", err)
	}

	recent, err = store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if recent[0].ClosedAt == nil || !recent[0].ClosedAt.Equal(closed) {
		t.Fatalf("ClosedAt: got %v, want %v", recent[0].ClosedAt, closed)
	}
	if recent[0].CloseReason != "client disconnected" {
		t.Fatalf("CloseReason: got %q", recent[0].CloseReason)
	}
}

func TestRecentOrdersMostRecentFirst(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	store.RecordOpen("a", "[a]", time.Unix(100, 0))
	store.RecordOpen("b", "[b]", time.Unix(200, 0))

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "b" || recent[1].ID != "a" {
		t.Fatalf("Recent order: got %+v", recent)
	}
}
