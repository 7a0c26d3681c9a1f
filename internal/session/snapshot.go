package session

import (
	"context"
	"encoding/json"

	"github.com/ehanandbaba/arithmetics-arena/internal/model"
	"github.com/ehanandbaba/arithmetics-arena/internal/store"
)

// Snapshot is the complete serializable state of a paused session.
type Snapshot struct {
	Settings        model.Settings     `json:"settings"`
	Stats           model.SessionStats `json:"stats"`
	Question        model.Question     `json:"question"`
	QuestionLeft    int                `json:"questionLeft"`
	TotalLeft       int                `json:"totalLeft"`
	PendingElapsed  float64            `json:"pendingElapsed"` // seconds
	Daily           bool               `json:"daily"`
	DurableUnlocked []string           `json:"durableUnlocked"`
}

// KV is the durable blob store a snapshot persists through.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Snapshots stores paused-session snapshots under a fixed key.
type Snapshots struct {
	kv KV
}

// NewSnapshots wraps a blob store for snapshot persistence.
func NewSnapshots(kv KV) *Snapshots {
	return &Snapshots{kv: kv}
}

// SavePaused persists the snapshot.
func (s *Snapshots) SavePaused(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, store.KeyPausedSession, data)
}

// LoadPaused returns the stored snapshot, if any. A missing or corrupt
// blob yields ok=false rather than an error.
func (s *Snapshots) LoadPaused(ctx context.Context) (Snapshot, bool, error) {
	data, ok, err := s.kv.Get(ctx, store.KeyPausedSession)
	if err != nil {
		return Snapshot{}, false, err
	}
	if !ok {
		return Snapshot{}, false, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// ClearPaused removes the stored snapshot.
func (s *Snapshots) ClearPaused(ctx context.Context) error {
	return s.kv.Delete(ctx, store.KeyPausedSession)
}
