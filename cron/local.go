package cron

import (
	"context"
	"fmt"
	"time"

	"pestcontrol/utils"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type localScheduler struct {
	c *robfig.Cron
}

// StartLocalReconciler runs the reconcile job in process. It is used when no
// Redis is configured.
func StartLocalReconciler(r Reconciler, schedule string) (Stopper, error) {
	c := robfig.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = handleReconcileTask(r)(ctx, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}
	c.Start()
	utils.GetLogger().Info("reconcile worker started", zap.String("schedule", schedule), zap.String("backend", "local"))
	return &localScheduler{c: c}, nil
}

func (s *localScheduler) Stop() {
	<-s.c.Stop().Done()
}
