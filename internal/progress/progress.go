// Package progress owns the durable cumulative player record.
package progress

import (
	"context"
	"encoding/json"

	"github.com/ehanandbaba/arithmetics-arena/internal/achievements"
	"github.com/ehanandbaba/arithmetics-arena/internal/model"
	"github.com/ehanandbaba/arithmetics-arena/internal/store"
)

// KV is the durable blob store progress persists through.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Defaults returns a fresh record: zeroed counters and every catalog
// achievement locked.
func Defaults() model.Progress {
	achs := make(map[string]model.AchievementState, len(achievements.Catalog))
	for _, a := range achievements.Catalog {
		achs[a.ID] = model.AchievementState{}
	}
	return model.Progress{
		FastestAnswer: model.NoTime(),
		Achievements:  achs,
	}
}

// Store reads and writes the progress record.
type Store struct {
	kv KV
}

// NewStore wraps a blob store for progress persistence.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the stored record. A missing, unreadable, or corrupt
// blob falls back to defaults; progress loss is an acceptable degraded
// mode, a crash is not.
func (s *Store) Load(ctx context.Context) model.Progress {
	data, ok, err := s.kv.Get(ctx, store.KeyProgress)
	if err != nil || !ok {
		return Defaults()
	}
	prog := Defaults()
	if err := json.Unmarshal(data, &prog); err != nil {
		return Defaults()
	}
	// Catalog entries added since the blob was written start locked.
	for _, a := range achievements.Catalog {
		if _, ok := prog.Achievements[a.ID]; !ok {
			prog.Achievements[a.ID] = model.AchievementState{}
		}
	}
	return prog
}

// Save persists the record as a single unit.
func (s *Store) Save(ctx context.Context, prog model.Progress) error {
	data, err := json.Marshal(prog)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, store.KeyProgress, data)
}

// Reset returns the record to defaults. The daily challenge state is
// stored under its own key and is not touched.
func (s *Store) Reset(ctx context.Context) error {
	return s.kv.Delete(ctx, store.KeyProgress)
}
