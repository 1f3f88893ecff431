package tasks

import (
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeUploadSweep removes uploads that never got a document.
	TypeUploadSweep = "media:sweep"

	MaintenanceQueue = "maintenance"
)

// NewUploadSweepTask builds the periodic sweep task. A sweep that fails is not retried;
// the next tick picks the same entries up again. Unique keeps at most one sweep queued per
// interval.
func NewUploadSweepTask(interval time.Duration) (*asynq.Task, []asynq.Option) {
	task := asynq.NewTask(TypeUploadSweep, nil)
	opts := []asynq.Option{
		asynq.Queue(MaintenanceQueue),
		asynq.MaxRetry(0),
		asynq.Unique(interval),
	}
	return task, opts
}
