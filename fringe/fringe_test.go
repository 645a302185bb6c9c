package fringe

import "testing"

func TestBFSOrderIsFIFO(t *testing.T) {
	f := NewBFS(4)
	for _, id := range []uint32{10, 20, 30} {
		if !f.Push(id, 0) {
			t.Fatalf("Push(%d) failed", id)
		}
	}
	for _, want := range []uint32{10, 20, 30} {
		id, _, ok := f.Pop()
		if !ok || id != want {
			t.Fatalf("Pop() = (%d, %v), want %d", id, ok, want)
		}
	}
	if !f.IsEmpty() {
		t.Fatal("expected empty fringe")
	}
}

func TestBFSRejectsOverCapacity(t *testing.T) {
	f := NewBFS(1)
	if !f.Push(1, 0) {
		t.Fatal("first push should succeed")
	}
	if f.Push(2, 0) {
		t.Fatal("push past capacity should fail")
	}
}

func TestUCSPopsInCostOrder(t *testing.T) {
	f := NewUCS(8)
	entries := []struct {
		id  uint32
		key float32
	}{{3, 5.0}, {1, 1.0}, {2, 3.0}, {4, 1.0}}
	for _, e := range entries {
		if !f.Push(e.id, e.key) {
			t.Fatalf("Push(%d) failed", e.id)
		}
	}

	var lastKey float32 = -1
	var poppedIDs []uint32
	for !f.IsEmpty() {
		id, key, ok := f.Pop()
		if !ok {
			t.Fatal("Pop() ok = false while non-empty")
		}
		if key < lastKey {
			t.Fatalf("UCS popped out of order: %v after %v", key, lastKey)
		}
		lastKey = key
		poppedIDs = append(poppedIDs, id)
	}
	// The two key=1.0 entries (nodeID 1 and 4) must tie-break by lower id first.
	if poppedIDs[0] != 1 || poppedIDs[1] != 4 {
		t.Fatalf("tie-break order = %v, want [1 4 ...]", poppedIDs)
	}
}

func TestUCSRejectsOverCapacity(t *testing.T) {
	f := NewUCS(1)
	if !f.Push(1, 1.0) {
		t.Fatal("first push should succeed")
	}
	if f.Push(2, 2.0) {
		t.Fatal("push past capacity should fail")
	}
}

func TestUCSPeekDoesNotRemove(t *testing.T) {
	f := NewUCS(4)
	f.Push(5, 2.0)
	id, key, ok := f.Peek()
	if !ok || id != 5 || key != 2.0 {
		t.Fatalf("Peek() = (%d, %v, %v), want (5, 2.0, true)", id, key, ok)
	}
	if f.Len() != 1 {
		t.Fatalf("Len() after Peek = %d, want 1", f.Len())
	}
}
