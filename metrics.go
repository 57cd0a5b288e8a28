package dailyrotate

import "sync/atomic"

// Metrics is a snapshot of a Logger's rotation counters.
type Metrics struct {
	TimeRotations uint64 // period changes that moved the live file away
	SizeRotations uint64 // size thresholds that moved the live file away
	Failures      uint64 // rotation steps reported to the ErrorSink
	Pruned        uint64 // backups deleted by keep period retention
}

type atomicMetrics struct {
	TimeRotations atomic.Uint64
	SizeRotations atomic.Uint64
	Failures      atomic.Uint64
	Pruned        atomic.Uint64
}

func (m *atomicMetrics) toMetrics() Metrics {
	return Metrics{
		TimeRotations: m.TimeRotations.Load(),
		SizeRotations: m.SizeRotations.Load(),
		Failures:      m.Failures.Load(),
		Pruned:        m.Pruned.Load(),
	}
}
