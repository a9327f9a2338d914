package statestore

import (
	"context"
	"testing"
)

type snapshot struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	in := snapshot{Items: []string{"a", "b"}, Count: 2}

	if err := store.Save(context.Background(), "cart", in); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	var out snapshot
	found, err := store.Load(context.Background(), "cart", &out)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if !found {
		t.Fatal("expected snapshot to exist")
	}
	if out.Count != in.Count || len(out.Items) != len(in.Items) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	var out snapshot
	found, err := store.Load(context.Background(), "nothing", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected missing namespace")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Save(context.Background(), "cart", snapshot{Count: 1}); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if err := store.Delete(context.Background(), "cart"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}

	var out snapshot
	found, _ := store.Load(context.Background(), "cart", &out)
	if found {
		t.Fatal("expected namespace to be gone")
	}
}

func TestSubscribeFiresOnSaveAndCancels(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	fired := 0
	cancel := store.Subscribe("cart", func() { fired++ })

	if err := store.Save(context.Background(), "cart", snapshot{}); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if err := store.Save(context.Background(), "orders", snapshot{}); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected 1 notification, got %d", fired)
	}

	cancel()
	if err := store.Save(context.Background(), "cart", snapshot{}); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected no notification after cancel, got %d", fired)
	}
}
