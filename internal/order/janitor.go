package order

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Janitor runs age cleanup on a fixed interval until its context ends.
type Janitor struct {
	service  *Service
	interval time.Duration
	days     int
}

func NewJanitor(service *Service, interval time.Duration, days int) *Janitor {
	return &Janitor{service: service, interval: interval, days: days}
}

func (j *Janitor) Run(ctx context.Context) error {
	if j.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	log.Infow("order janitor started", "interval", j.interval.String(), "retentionDays", j.days)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) int64 {
	deleted, err := j.service.CleanupOlderThan(ctx, j.days)
	if err != nil {
		log.Errorw("order janitor sweep failed", "error", err)
		return 0
	}
	if deleted > 0 {
		log.Infow("order janitor removed old orders", "deletedCount", deleted, "retentionDays", j.days)
	}
	return deleted
}
