package registry

import "testing"

type fakeResource struct {
	id   ObjectID
	kind Kind
}

func (f fakeResource) ObjectID() ObjectID { return f.id }
func (f fakeResource) Kind() Kind         { return f.kind }

func TestRegistryInsertGetRemove(t *testing.T) {
	r := New()
	display := fakeResource{id: DisplayID, kind: KindDisplay}
	if err := r.Insert(display); err != nil {
		t.Fatal(err)
	}

	got, ok := r.Get(DisplayID)
	if !ok || got.Kind() != KindDisplay {
		t.Fatalf("Get: ok=%v got=%+v", ok, got)
	}

	if !r.Remove(DisplayID) {
		t.Fatal("Remove returned false for bound object")
	}
	if _, ok := r.Get(DisplayID); ok {
		t.Fatal("object still present after Remove")
	}
	if r.Remove(DisplayID) {
		t.Fatal("Remove returned true for already-removed object")
	}
}

func TestRegistryRejectsOutOfRangeID(t *testing.T) {
	r := New()
	err := r.Insert(fakeResource{id: 0, kind: KindSurface})
	if err == nil {
		t.Fatal("expected out-of-range error for id 0")
	}
}

func TestRegistryRejectsDuplicateID(t *testing.T) {
	r := New()
	surface := fakeResource{id: ObjectID(2), kind: KindSurface}
	if err := r.Insert(surface); err != nil {
		t.Fatal(err)
	}
	if err := r.Insert(surface); err == nil {
		t.Fatal("expected duplicate-id error")
	}
}

func TestGlobalsTableSeedOrder(t *testing.T) {
	g := NewGlobalsTable()
	all := g.All()
	if len(all) != 3 {
		t.Fatalf("got %d globals, want 3", len(all))
	}
	want := []string{"wl_compositor", "wl_shm", "xdg_wm_base"}
	for i, iface := range want {
		if all[i].Interface != iface || all[i].Name != uint32(i+1) {
			t.Fatalf("global[%d] = %+v, want interface=%s name=%d", i, all[i], iface, i+1)
		}
	}
}

func TestGlobalsTableByName(t *testing.T) {
	g := NewGlobalsTable()
	got, err := g.ByName(2)
	if err != nil || got.Interface != "wl_shm" {
		t.Fatalf("ByName(2) = %+v, err %v", got, err)
	}
	if _, err := g.ByName(99); err == nil {
		t.Fatal("expected unknown-global error")
	}
}

func TestGlobalsTableAdd(t *testing.T) {
	g := NewGlobalsTable()
	added := g.Add("wl_seat", 7)
	if added.Name != 4 {
		t.Fatalf("Add: got name %d, want 4", added.Name)
	}
	if len(g.All()) != 4 {
		t.Fatal("Add did not extend All()")
	}
}
