package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryHookStore_InsertGetDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryHookStore()
	ctx := t.Context()

	record := HookRecord{
		ID:      "A",
		Secret:  "s1",
		Created: time.Unix(1700000000, 0).UTC(),
	}

	if err := store.Insert(ctx, record); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := store.Get(ctx, "A")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(record, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	if err := store.Delete(ctx, "A"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := store.Get(ctx, "A"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryHookStore_InsertAfterDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryHookStore()
	ctx := t.Context()

	first := HookRecord{ID: "A", Secret: "s1", Created: time.Unix(1700000000, 0).UTC()}
	second := HookRecord{ID: "A", Secret: "s2", Created: time.Unix(1700000100, 0).UTC()}

	if err := store.Insert(ctx, first); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := store.Insert(ctx, second); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("Insert() duplicate error = %v, want ErrAlreadyExists", err)
	}
	if err := store.Delete(ctx, "A"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Insert(ctx, second); err != nil {
		t.Fatalf("Insert() after delete error = %v", err)
	}

	got, err := store.Get(ctx, "A")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryHookStore_DeleteMissingIsNoop(t *testing.T) {
	t.Parallel()

	store := NewMemoryHookStore()

	if err := store.Delete(t.Context(), "missing"); err != nil {
		t.Errorf("Delete() of missing id error = %v, want nil", err)
	}
}

func TestMemoryHookStore_List(t *testing.T) {
	t.Parallel()

	store := NewMemoryHookStore()
	ctx := t.Context()

	records := []HookRecord{
		{ID: "b", Secret: "s2", Created: time.Unix(1700000100, 0).UTC()},
		{ID: "a", Secret: "s1", Created: time.Unix(1700000000, 0).UTC()},
	}
	for _, record := range records {
		if err := store.Insert(ctx, record); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []HookRecord{records[1], records[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryHookStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewMemoryHookStore()
	ctx := t.Context()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			record := HookRecord{ID: id, Secret: "s", Created: time.Now()}
			_ = store.Insert(ctx, record)
			_, _ = store.Get(ctx, id)
			_ = store.Delete(ctx, id)
		}(i)
	}
	wg.Wait()

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() returned %d records, want 0", len(got))
	}
}
