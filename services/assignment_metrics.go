package services

import (
	"sync"
	"time"
)

// AssignmentMetrics counts assignment outcomes since process start.
type AssignmentMetrics struct {
	TotalAssignments  int64 `json:"total_assignments"`
	Successful        int64 `json:"successful"`
	Failed            int64 `json:"failed"`
	RejectedBusy      int64 `json:"rejected_busy"`
	AvgResponseTimeMs int64 `json:"avg_response_time_ms"`
}

type metricsRecorder struct {
	mu      sync.Mutex
	metrics AssignmentMetrics
	totalMs int64
}

func (r *metricsRecorder) record(err error, elapsed time.Duration, busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.metrics.TotalAssignments++
	switch {
	case err == nil:
		r.metrics.Successful++
	case busy:
		r.metrics.RejectedBusy++
	default:
		r.metrics.Failed++
	}
	r.totalMs += elapsed.Milliseconds()
	r.metrics.AvgResponseTimeMs = r.totalMs / r.metrics.TotalAssignments
}

func (r *metricsRecorder) snapshot() AssignmentMetrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metrics
}
