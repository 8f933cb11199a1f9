// Package metrics records tracker activity counters.
package metrics

import "time"

// Recorder receives activity measurements. Implementations must be safe for concurrent use.
type Recorder interface {
	// Transactions
	RecordTransactions(kind string, count int)
	RecordImport(format string, success bool, count int)
	RecordExport(format string)

	// Budgets
	RecordAlert(level string)

	// HTTP
	RecordRequest(method, route string, status int, duration time.Duration)
}

// NoOpRecorder discards every measurement
type NoOpRecorder struct{}

func (NoOpRecorder) RecordTransactions(kind string, count int) {}
func (NoOpRecorder) RecordImport(format string, success bool, count int) {}
func (NoOpRecorder) RecordExport(format string) {}
func (NoOpRecorder) RecordAlert(level string) {}
func (NoOpRecorder) RecordRequest(method, route string, status int, duration time.Duration) {}
