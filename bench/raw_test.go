package bench

import (
	"testing"

	"github.com/weiihann/packbench/alloc"
)

func newRawStore(t *testing.T, n int) *RawByteStore {
	t.Helper()

	a, err := alloc.New(1, alloc.EagerCommit)
	if err != nil {
		t.Fatalf("New allocator failed: %v", err)
	}

	store, err := NewRawByteStore(a, n)
	if err != nil {
		t.Fatalf("NewRawByteStore failed: %v", err)
	}

	t.Cleanup(func() { store.Close() })

	return store
}

func TestRawSetGetRoundTrip(t *testing.T) {
	store := newRawStore(t, 100)

	for _, i := range []int{0, 1, 50, 99} {
		if store.Get(i) {
			t.Errorf("flag %d initially true, want false", i)
		}

		store.Set(i, true)
		if !store.Get(i) {
			t.Errorf("flag %d = false after Set(true)", i)
		}

		store.Set(i, false)
		if store.Get(i) {
			t.Errorf("flag %d = true after Set(false)", i)
		}
	}
}

func TestRawDoubleFlipRestores(t *testing.T) {
	store := newRawStore(t, 100)

	store.Set(42, true)

	for _, i := range []int{0, 42, 99} {
		before := store.Get(i)
		store.Flip(i)
		store.Flip(i)

		if got := store.Get(i); got != before {
			t.Errorf("flag %d = %v after double flip, want %v", i, got, before)
		}
	}
}

func TestRawFlipNeighborsUntouched(t *testing.T) {
	store := newRawStore(t, 10)

	store.Set(4, true)
	store.Flip(5)

	for i := 0; i < store.Len(); i++ {
		want := i == 4 || i == 5
		if got := store.Get(i); got != want {
			t.Errorf("flag %d = %v, want %v", i, got, want)
		}
	}
}

func TestRawFootprint(t *testing.T) {
	store := newRawStore(t, 8096)

	if got := store.FootprintBytes(); got != 8096 {
		t.Errorf("footprint = %d, want 8096", got)
	}
	if store.Len() != 8096 {
		t.Errorf("Len = %d, want 8096", store.Len())
	}
}

func TestRawRejectsWrongElemSize(t *testing.T) {
	a, err := alloc.New(8, alloc.EagerCommit)
	if err != nil {
		t.Fatalf("New allocator failed: %v", err)
	}

	if _, err := NewRawByteStore(a, 10); err == nil {
		t.Error("expected error for 8-byte allocator")
	}
}
