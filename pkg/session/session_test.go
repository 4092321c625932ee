package session

import (
	"context"
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	id1, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID error: %v", err)
	}
	id2, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID error: %v", err)
	}
	if id1 == id2 {
		t.Error("IDs should be unique")
	}
	if len(id1) == 0 {
		t.Error("ID should not be empty")
	}
}

func TestNew(t *testing.T) {
	sess, err := New("diagram-123", time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if sess.DiagramID != "diagram-123" {
		t.Errorf("DiagramID = %s, want diagram-123", sess.DiagramID)
	}
	if sess.ID == "" {
		t.Error("session should have an ID")
	}
	if sess.IsExpired() {
		t.Error("fresh session should not be expired")
	}
	if !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Error("ExpiresAt should be after CreatedAt")
	}
}

func TestIsExpired(t *testing.T) {
	sess := &Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !sess.IsExpired() {
		t.Error("past ExpiresAt should be expired")
	}

	sess.ExpiresAt = time.Now().Add(time.Minute)
	if sess.IsExpired() {
		t.Error("future ExpiresAt should not be expired")
	}
}

// storeFuncs lets the store tests run against every backend.
func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Unknown token is nil, nil
	sess, err := store.Get(ctx, "unknown")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if sess != nil {
		t.Error("unknown token should return nil")
	}

	// Round-trip
	created, err := New("diagram-1", time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := store.Set(ctx, created); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil || got.DiagramID != "diagram-1" {
		t.Fatalf("Get returned %+v, want diagram-1", got)
	}

	// Expired sessions are treated as absent
	expired, err := New("diagram-2", -time.Minute)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := store.Set(ctx, expired); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err = store.Get(ctx, expired.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Error("expired session should return nil")
	}

	// Delete
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	got, _ = store.Get(ctx, created.ID)
	if got != nil {
		t.Error("deleted session should return nil")
	}

	// Cleanup removes expired entries without touching live ones
	live, _ := New("diagram-3", time.Hour)
	stale, _ := New("diagram-4", -time.Minute)
	_ = store.Set(ctx, live)
	_ = store.Set(ctx, stale)
	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup error: %v", err)
	}
	got, _ = store.Get(ctx, live.ID)
	if got == nil {
		t.Error("Cleanup should keep live sessions")
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	testStore(t, store)
}
