package tasks

import (
	"time"

	"github.com/hibiken/asynq"
)

// TypeReconcileFeatured resets the featured-slot counter from stored services.
const TypeReconcileFeatured = "catalog:reconcile-featured"

func NewReconcileFeaturedTask() *asynq.Task {
	return asynq.NewTask(TypeReconcileFeatured, nil,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
		asynq.Unique(time.Minute),
	)
}
