package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ehanandbaba/arithmetics-arena/internal/model"
	"github.com/ehanandbaba/arithmetics-arena/internal/progress"
	"github.com/ehanandbaba/arithmetics-arena/internal/question"
	"github.com/ehanandbaba/arithmetics-arena/internal/session"
)

// failingKV rejects every write, so the recorder's save fails.
type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func (failingKV) Delete(context.Context, string) error {
	return nil
}

func newFinishedModel(t *testing.T, kv progress.KV) *Model {
	t.Helper()
	settings := model.Settings{
		Mode:            model.ModeMultiplication,
		TimerMode:       model.TimerPerQuestion,
		TimeLimit:       30,
		SelectedTables:  []int{7},
		MultiplierRange: model.Range{Min: 3, Max: 3},
	}
	sess, err := session.New(settings, question.NewSeeded(1), session.Options{})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	m := NewModel(sess, progress.NewRecorder(progress.NewStore(kv), nil))

	// Table 7, multiplier fixed at 3: the answer is always 21.
	sess.Submit("21")
	sess.Complete()
	m.Update(tickMsg(time.Time{}))
	return m
}

func TestResultsViewKeepsSummaryOnFailedSave(t *testing.T) {
	m := newFinishedModel(t, failingKV{})
	if m.finalizeErr == nil {
		t.Fatal("expected the save to fail")
	}

	out := m.View()
	for _, want := range []string{"correct 1", "accuracy 100%", "Progress not saved"} {
		if !strings.Contains(out, want) {
			t.Fatalf("results view missing %q:\n%s", want, out)
		}
	}
}
