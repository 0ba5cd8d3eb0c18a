package pipeline

import (
	"testing"
	"time"
)

func TestRenderStats_Percentiles(t *testing.T) {
	stats := NewRenderStats(time.Hour)
	for _, ms := range []int{300, 100, 500, 200, 400} {
		stats.Record(time.Duration(ms)*time.Millisecond, false)
	}

	snap := stats.Snapshot()
	want := StatsSnapshot{
		Count: 5,
		MinMs: 100,
		MaxMs: 500,
		AvgMs: 300,
		P50Ms: 300,
		P95Ms: 480,
		P99Ms: 496,
	}
	if snap != want {
		t.Errorf("expected %+v, got %+v", want, snap)
	}
}

func TestRenderStats_CountsFailures(t *testing.T) {
	stats := NewRenderStats(time.Hour)
	stats.Record(time.Millisecond, true)
	stats.Record(time.Millisecond, false)
	stats.Record(time.Millisecond, true)

	if snap := stats.Snapshot(); snap.Count != 3 || snap.Failed != 2 {
		t.Errorf("expected count=3 failed=2, got %+v", snap)
	}
}

func TestRenderStats_PrunesExpiredSamples(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	stats := NewRenderStats(time.Minute)
	stats.now = func() time.Time { return now }

	stats.Record(100*time.Millisecond, false)
	now = now.Add(2 * time.Minute)

	if snap := stats.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Record(200*time.Millisecond, false)
	snap := stats.Snapshot()
	if snap.Count != 1 || snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Errorf("expected a single 200ms sample, got %+v", snap)
	}
}

func TestRenderStats_ClampsNegativeDuration(t *testing.T) {
	stats := NewRenderStats(0)
	stats.Record(-time.Second, false)
	if snap := stats.Snapshot(); snap.MinMs != 0 {
		t.Errorf("expected min=0, got %d", snap.MinMs)
	}
}

func TestRenderStats_Empty(t *testing.T) {
	if snap := NewRenderStats(time.Hour).Snapshot(); snap != (StatsSnapshot{}) {
		t.Errorf("expected zero snapshot, got %+v", snap)
	}
}
