package workers

import (
	"context"
	"time"

	"tailorix_backend/internal/logger"
	"tailorix_backend/internal/services"
)

// SubscriptionWorker sweeps lapsed subscriptions so expired tailors drop out
// of listings without waiting for their next login.
type SubscriptionWorker struct {
	subscriptionService services.SubscriptionService
	interval            time.Duration
}

func NewSubscriptionWorker(subscriptionService services.SubscriptionService, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &SubscriptionWorker{
		subscriptionService: subscriptionService,
		interval:            interval,
	}
}

// Start runs the expiry sweep until ctx is cancelled. One sweep executes
// immediately so a restart does not leave expired tailors listed for a full
// interval.
func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SubscriptionWorker) run(ctx context.Context) {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SubscriptionWorker) sweep(ctx context.Context) {
	expired, err := w.subscriptionService.ExpireOverdue(ctx)
	if err != nil {
		logger.WorkerLog("subscription", "expire_overdue", err)
		return
	}
	if expired > 0 {
		logger.Info("Expired overdue subscriptions", "count", expired)
	}
}
