// Package availability tracks outcomes of the best-effort alerts call.
// A failing alerts call never fails a retrieval, so the only place its
// health is visible is here: the health handler reads the error rate
// over a sliding window and reports alerts as degraded when it breaches
// the configured threshold.
package availability

import (
	"sync"
	"time"
)

var defaultTracker Tracker

// RecordSuccess records a successful alerts fetch.
func RecordSuccess() {
	defaultTracker.RecordSuccess()
}

// RecordFailure records a failed alerts fetch (swallowed by the retrieval path).
func RecordFailure() {
	defaultTracker.RecordFailure()
}

// FailureRate returns (failureCount, totalCount) within the window.
func FailureRate(window time.Duration) (failures, total int) {
	return defaultTracker.FailureRate(window)
}

// Reset clears all recorded outcomes. For tests only.
func Reset() {
	defaultTracker.Reset()
}

// Tracker maintains sliding windows of alerts-call outcome timestamps.
type Tracker struct {
	mu           sync.Mutex
	successTimes []time.Time
	failureTimes []time.Time
}

// RecordSuccess records a successful alerts fetch in the tracker.
func (t *Tracker) RecordSuccess() {
	t.recordOutcome(&t.successTimes)
}

// RecordFailure records a failed alerts fetch in the tracker.
func (t *Tracker) RecordFailure() {
	t.recordOutcome(&t.failureTimes)
}

// recordOutcome appends the current timestamp and prunes old entries.
func (t *Tracker) recordOutcome(slice *[]time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	*slice = append(*slice, now)
	t.pruneLocked(now)
}

// FailureRate returns (failureCount, totalCount) within the window.
func (t *Tracker) FailureRate(window time.Duration) (failures, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := time.Now().Add(-window)
	failCount := t.countInWindow(t.failureTimes, cutoff)
	successCount := t.countInWindow(t.successTimes, cutoff)
	return failCount, failCount + successCount
}

// Reset clears all recorded outcomes from the tracker.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.successTimes = nil
	t.failureTimes = nil
}

// countInWindow counts timestamps that are not before the cutoff time.
func (t *Tracker) countInWindow(times []time.Time, cutoff time.Time) int {
	n := 0
	for _, ts := range times {
		if !ts.Before(cutoff) {
			n++
		}
	}
	return n
}

// pruneLocked removes timestamps older than 5 minutes. Must be called
// with the mutex held.
func (t *Tracker) pruneLocked(now time.Time) {
	cutoff := now.Add(-5 * time.Minute)
	prune := func(slice *[]time.Time) {
		times := *slice
		i := 0
		for ; i < len(times) && times[i].Before(cutoff); i++ {
		}
		if i > 0 {
			*slice = append(times[:0], times[i:]...)
		}
	}
	prune(&t.successTimes)
	prune(&t.failureTimes)
}
