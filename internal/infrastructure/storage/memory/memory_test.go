package memory

import (
	"context"
	"testing"
)

func TestStore_ContextsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := s.ForContext("a")
	b := s.ForContext("b")

	if err := a.Set(ctx, "user", "alice"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := b.Get(ctx, "user"); ok {
		t.Fatalf("context b should not see context a's key")
	}
	v, ok, err := s.ForContext("a").Get(ctx, "user")
	if err != nil || !ok || v != "alice" {
		t.Fatalf("expected alice from a fresh handle, got %q %v %v", v, ok, err)
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := NewStore().ForContext("a")

	_ = kv.Set(ctx, "user", "x")
	if err := kv.Delete(ctx, "user"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "user"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "user"); ok {
		t.Fatalf("expected key to be gone")
	}
}
