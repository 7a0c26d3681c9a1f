// Package daily derives and stores the date-seeded daily challenge.
package daily

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/ehanandbaba/arithmetics-arena/internal/model"
	"github.com/ehanandbaba/arithmetics-arena/internal/store"
)

// DateLayout is the calendar-day key of a challenge.
const DateLayout = "2006-01-02"

// KV is the durable blob store the challenge persists through.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Service hands out today's challenge and records its completion.
type Service struct {
	kv  KV
	now func() time.Time
}

// NewService wraps a blob store for daily challenge persistence.
func NewService(kv KV) *Service {
	return &Service{kv: kv, now: time.Now}
}

// ForDate derives the challenge for a calendar day. Deterministic: all
// players get the same challenge on the same day.
func ForDate(t time.Time) model.DailyChallenge {
	seed := int64(t.Day()) + int64(t.Month())*31 + int64(t.Year())*365
	rnd := rand.New(rand.NewSource(seed))

	mode := model.Modes[seed%int64(len(model.Modes))]
	tableCount := 3 + rnd.Intn(4)  // 3-6 consecutive tables
	startTable := 1 + rnd.Intn(20-tableCount)
	tables := make([]int, tableCount)
	for i := range tables {
		tables[i] = startTable + i
	}
	multMin := 1 + rnd.Intn(5)
	multMax := multMin + 2 + rnd.Intn(10-multMin-1)

	return model.DailyChallenge{
		Date: t.Format(DateLayout),
		Settings: model.Settings{
			Mode:            mode,
			TimerMode:       model.TimerPerQuestion,
			TimeLimit:       15 + rnd.Intn(16),
			SelectedTables:  tables,
			MultiplierRange: model.Range{Min: multMin, Max: multMax},
		},
	}
}

// Today returns the stored challenge if it is for today, otherwise a
// freshly derived one, persisted for the rest of the day. A corrupt
// blob is treated as absent.
func (s *Service) Today(ctx context.Context) (model.DailyChallenge, error) {
	today := s.now().Format(DateLayout)
	data, ok, err := s.kv.Get(ctx, store.KeyDailyChallenge)
	if err == nil && ok {
		var ch model.DailyChallenge
		if jerr := json.Unmarshal(data, &ch); jerr == nil && ch.Date == today {
			return ch, nil
		}
	}

	ch := ForDate(s.now())
	// Best-effort persistence. The derived challenge is usable either
	// way; a failed write just re-derives the same challenge next call.
	_ = s.save(ctx, ch)
	return ch, nil
}

// Complete marks today's challenge completed with its score. Completion
// is one-way: a challenge already completed is left unchanged.
func (s *Service) Complete(ctx context.Context, score model.Score) error {
	ch, err := s.Today(ctx)
	if err != nil {
		return err
	}
	if ch.Completed {
		return nil
	}
	ch.Completed = true
	ch.Score = &score
	return s.save(ctx, ch)
}

func (s *Service) save(ctx context.Context, ch model.DailyChallenge) error {
	data, err := json.Marshal(ch)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, store.KeyDailyChallenge, data)
}
