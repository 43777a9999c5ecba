// concurrency/metrics.go
package concurrency

import "time"

// GateSnapshot is a point-in-time copy of GateMetrics.
type GateSnapshot struct {
	Accepted        int64
	Rejected        int64
	Released        int64
	AverageHoldTime time.Duration
}

// Snapshot returns the current gate metrics.
func (g *RequestGate) Snapshot() GateSnapshot {
	g.Metrics.Lock.Lock()
	defer g.Metrics.Lock.Unlock()

	snap := GateSnapshot{
		Accepted: g.Metrics.Accepted,
		Rejected: g.Metrics.Rejected,
		Released: g.Metrics.Released,
	}
	if g.Metrics.Released > 0 {
		snap.AverageHoldTime = g.Metrics.TotalHoldTime / time.Duration(g.Metrics.Released)
	}
	return snap
}
