package pipeline

import (
	"slices"
	"sync"
	"time"
)

// runSample is one finished run.
type runSample struct {
	at         time.Time
	durationMs int64
	files      int
	failed     bool
}

// StatsSnapshot aggregates the runs inside the window.
type StatsSnapshot struct {
	Count       int     `json:"count"`
	Failed      int     `json:"failed"`
	FailedRatio float64 `json:"failed_ratio"`
	AvgFiles    float64 `json:"avg_files"`
	MinMs       int64   `json:"min_ms"`
	MaxMs       int64   `json:"max_ms"`
	AvgMs       float64 `json:"avg_ms"`
	P50Ms       float64 `json:"p50_ms"`
	P95Ms       float64 `json:"p95_ms"`
	P99Ms       float64 `json:"p99_ms"`
}

// RunStats keeps the outcome of recent lint runs over a rolling window.
// A run is failed when it found violations or could not complete.
type RunStats struct {
	mu     sync.Mutex
	runs   []runSample
	window time.Duration
}

func NewRunStats(window time.Duration) *RunStats {
	if window <= 0 {
		window = time.Hour
	}
	return &RunStats{window: window}
}

// Record adds a finished run. files is the number of lessons it checked.
func (s *RunStats) Record(d time.Duration, files int, failed bool) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expire(now)
	s.runs = append(s.runs, runSample{at: now, durationMs: ms, files: files, failed: failed})
}

func (s *RunStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	s.expire(time.Now())
	runs := slices.Clone(s.runs)
	s.mu.Unlock()

	if len(runs) == 0 {
		return StatsSnapshot{}
	}

	durations := make([]int64, len(runs))
	var snap StatsSnapshot
	var totalMs int64
	var totalFiles int
	for i, r := range runs {
		durations[i] = r.durationMs
		totalMs += r.durationMs
		totalFiles += r.files
		if r.failed {
			snap.Failed++
		}
	}
	slices.Sort(durations)

	n := float64(len(runs))
	snap.Count = len(runs)
	snap.FailedRatio = float64(snap.Failed) / n
	snap.AvgFiles = float64(totalFiles) / n
	snap.MinMs = durations[0]
	snap.MaxMs = durations[len(durations)-1]
	snap.AvgMs = float64(totalMs) / n
	snap.P50Ms = percentile(durations, 50)
	snap.P95Ms = percentile(durations, 95)
	snap.P99Ms = percentile(durations, 99)
	return snap
}

// expire drops runs older than the window. Runs are appended in time order.
func (s *RunStats) expire(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.runs) && s.runs[i].at.Before(cutoff) {
		i++
	}
	s.runs = s.runs[i:]
}

// percentile interpolates linearly between the two nearest ranks of sorted.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	rank := float64(len(sorted)-1) * pct / 100
	lo := int(rank)
	if lo+1 >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}
