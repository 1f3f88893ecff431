package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sitecms/services/storage"
	"sitecms/services/tasks"
	"sitecms/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sweeper deletes media host files whose ledger entries were never confirmed.
type Sweeper struct {
	Ledger     storage.UploadLedger
	Media      storage.MediaStore
	StaleAfter time.Duration
	// Limiter throttles delete calls against the media host; nil means unthrottled.
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

// Sweep deletes every stale upload and returns how many were removed. Individual delete
// failures do not stop the sweep; they are returned joined.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	ids, err := s.Ledger.Stale(ctx, s.StaleAfter)
	if err != nil {
		return 0, err
	}

	var errs []error
	swept := 0
	for _, id := range ids {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return swept, err
			}
		}
		if err := s.Media.Delete(ctx, id); err != nil {
			utils.SweptUploadsTotal.WithLabelValues("failed").Inc()
			s.Logger.Warn("Sweep: failed to delete orphaned upload", zap.String("publicID", id), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		if err := s.Ledger.Confirm(ctx, id); err != nil {
			errs = append(errs, err)
			continue
		}
		utils.SweptUploadsTotal.WithLabelValues("deleted").Inc()
		swept++
	}

	if swept > 0 {
		s.Logger.Info("Sweep: removed orphaned uploads", zap.Int("count", swept))
	}
	return swept, errors.Join(errs...)
}

// HandleSweepTask is the asynq handler for tasks.TypeUploadSweep.
func (s *Sweeper) HandleSweepTask(ctx context.Context, _ *asynq.Task) error {
	_, err := s.Sweep(ctx)
	return err
}

// StartUploadSweeper schedules tasks.TypeUploadSweep every interval and runs the worker that
// handles it. The returned function stops both.
func StartUploadSweeper(redisOpts asynq.RedisClientOpt, sweeper *Sweeper, interval time.Duration) (func(), error) {
	logger := sweeper.Logger.Sugar()

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{tasks.MaintenanceQueue: 1},
		Logger:      logger,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeUploadSweep, sweeper.HandleSweepTask)

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Logger: logger})
	spec := fmt.Sprintf("@every %s", interval)
	task, opts := tasks.NewUploadSweepTask(interval)
	if _, err := scheduler.Register(spec, task, opts...); err != nil {
		return nil, fmt.Errorf("failed to register upload sweep: %w", err)
	}

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start sweep worker: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("failed to start sweep scheduler: %w", err)
	}

	return func() {
		scheduler.Shutdown()
		srv.Shutdown()
	}, nil
}
