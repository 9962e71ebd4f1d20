package cron

import (
	"context"
	"fmt"
	"time"

	"pestcontrol/services/tasks"
	"pestcontrol/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Reconciler repairs derived catalog state.
type Reconciler interface {
	ReconcileFeatured(ctx context.Context) error
}

// Stopper is a running background scheduler.
type Stopper interface {
	Stop()
}

func handleReconcileTask(r Reconciler) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		start := time.Now()
		if err := r.ReconcileFeatured(ctx); err != nil {
			utils.GetLogger().Error("featured reconcile failed", zap.Error(err))
			return err
		}
		utils.GetLogger().Info("featured counter reconciled", zap.Duration("took", time.Since(start)))
		return nil
	}
}

// queueWorker runs the reconcile job through Redis so that only one instance
// executes each scheduled run.
type queueWorker struct {
	srv       *asynq.Server
	scheduler *asynq.Scheduler
}

// StartQueueReconciler registers the reconcile task on schedule and starts an
// asynq worker to process it.
func StartQueueReconciler(redisOpts asynq.RedisClientOpt, r Reconciler, schedule string) (Stopper, error) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{"default": 1},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReconcileFeatured, handleReconcileTask(r))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register(schedule, tasks.NewReconcileFeaturedTask()); err != nil {
		return nil, fmt.Errorf("failed to register reconcile schedule %q: %w", schedule, err)
	}

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start reconcile worker: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("failed to start reconcile scheduler: %w", err)
	}
	logger.Info("reconcile worker started", zap.String("schedule", schedule), zap.String("backend", "asynq"))
	return &queueWorker{srv: srv, scheduler: scheduler}, nil
}

func (w *queueWorker) Stop() {
	w.scheduler.Shutdown()
	w.srv.Shutdown()
}
