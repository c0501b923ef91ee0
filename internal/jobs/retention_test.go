package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakePruner) DeleteAnalysesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.cutoffs = append(f.cutoffs, cutoff)
	return 2, nil
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"", false},
		{"0 3 * * *", false},
		{"*/15 * * * 1-5", false},
		{"0 3 * *", true},
		{"@every 1h", true},
		{"not a schedule", true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := ParseSchedule(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSchedule(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultScheduleNextRun(t *testing.T) {
	sched, err := ParseSchedule("")
	if err != nil {
		t.Fatal(err)
	}
	from := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	want := time.Date(2026, 1, 11, 3, 0, 0, 0, time.UTC)
	if got := sched.Next(from); !got.Equal(want) {
		t.Errorf("Next(%v) = %v, want %v", from, got, want)
	}
}

func TestNewRetentionPruner_Validation(t *testing.T) {
	if _, err := NewRetentionPruner(nil, 30, "", nil); err == nil {
		t.Error("expected error for nil store")
	}
	if _, err := NewRetentionPruner(&fakePruner{}, 0, "", nil); err == nil {
		t.Error("expected error for zero days")
	}
	if _, err := NewRetentionPruner(&fakePruner{}, 30, "bogus", nil); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestPruneOnce(t *testing.T) {
	store := &fakePruner{}
	r, err := NewRetentionPruner(store, 30, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 3, 31, 3, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	deleted, err := r.PruneOnce(context.Background())
	if err != nil {
		t.Fatalf("PruneOnce error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	want := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	if len(store.cutoffs) != 1 || !store.cutoffs[0].Equal(want) {
		t.Errorf("cutoffs = %v, want [%v]", store.cutoffs, want)
	}
}

func TestPruneOnce_Error(t *testing.T) {
	r, err := NewRetentionPruner(&fakePruner{err: errors.New("db down")}, 7, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.PruneOnce(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestStart_StopsOnCancel(t *testing.T) {
	r, err := NewRetentionPruner(&fakePruner{}, 7, "", nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
