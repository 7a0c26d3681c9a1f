package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "arena.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return st
}

func TestSetGetRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, KeyProgress, []byte(`{"totalGamesPlayed":3}`)); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	data, ok, err := st.Get(ctx, KeyProgress)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if !ok || string(data) != `{"totalGamesPlayed":3}` {
		t.Fatalf("unexpected value: ok=%v data=%q", ok, data)
	}
}

func TestGetMissingKey(t *testing.T) {
	st := openTestStore(t)

	data, ok, err := st.Get(context.Background(), KeyPausedSession)
	if err != nil {
		t.Fatalf("missing key must not error: %v", err)
	}
	if ok || data != nil {
		t.Fatalf("expected no value, got ok=%v data=%q", ok, data)
	}
}

func TestSetOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, KeyDailyChallenge, []byte("first")); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	if err := st.Set(ctx, KeyDailyChallenge, []byte("second")); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}
	data, ok, err := st.Get(ctx, KeyDailyChallenge)
	if err != nil || !ok {
		t.Fatalf("failed to get: ok=%v err=%v", ok, err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwritten value, got %q", data)
	}
}

func TestDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, KeyPausedSession, []byte("snapshot")); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	if err := st.Delete(ctx, KeyPausedSession); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, ok, err := st.Get(ctx, KeyPausedSession); err != nil || ok {
		t.Fatalf("expected key gone: ok=%v err=%v", ok, err)
	}

	// Deleting a missing key is fine.
	if err := st.Delete(ctx, KeyPausedSession); err != nil {
		t.Fatalf("deleting a missing key must not error: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.db")
	ctx := context.Background()

	st, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := st.Set(ctx, KeyProgress, []byte("durable")); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			t.Errorf("failed to close store: %v", cerr)
		}
	}()
	data, ok, err := st.Get(ctx, KeyProgress)
	if err != nil || !ok {
		t.Fatalf("failed to get after reopen: ok=%v err=%v", ok, err)
	}
	if string(data) != "durable" {
		t.Fatalf("expected persisted value, got %q", data)
	}
}
