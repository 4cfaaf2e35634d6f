// Package slotreclaimer фоновый воркер, освобождающий осиротевшие слоты.
// Слот считается осиротевшим, если он занят, но активного бронирования
// на него нет (например, вставка бронирования упала после захвата слота,
// а компенсация не отработала).
package slotreclaimer

import (
	"context"
	"time"

	"github.com/appointify/appointment-service/pkg/metrics"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ReleaseOrphans(ctx context.Context, gracePeriod time.Duration) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Reclaimer периодически освобождает осиротевшие слоты
type Reclaimer struct {
	slotRepo    SlotRepository
	metrics     *metrics.Metrics
	logger      Logger
	interval    time.Duration
	gracePeriod time.Duration
}

// New создает воркер.
// gracePeriod защищает слоты, захваченные транзакцией, которая еще не закоммитилась.
func New(slotRepo SlotRepository, m *metrics.Metrics, logger Logger, interval, gracePeriod time.Duration) *Reclaimer {
	return &Reclaimer{
		slotRepo:    slotRepo,
		metrics:     m,
		logger:      logger,
		interval:    interval,
		gracePeriod: gracePeriod,
	}
}

// Run запускает цикл воркера. Блокирует до отмены контекста.
func (r *Reclaimer) Run(ctx context.Context) {
	r.logger.Info("slotreclaimer: started, interval=%s, grace=%s", r.interval, r.gracePeriod)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("slotreclaimer: stopped")
			return
		case <-ticker.C:
			r.reclaim(ctx)
		}
	}
}

func (r *Reclaimer) reclaim(ctx context.Context) {
	released, err := r.slotRepo.ReleaseOrphans(ctx, r.gracePeriod)
	if err != nil {
		r.logger.Error("slotreclaimer: failed to release orphans: %v", err)
		return
	}

	if released > 0 {
		r.metrics.SlotsReclaimedTotal.WithLabelValues("slotreclaimer").Add(float64(released))
		r.logger.Info("slotreclaimer: released %d orphaned slots", released)
	}
}
