package ordercleanup

import (
	"context"
	"fmt"
	"time"

	"log/slog"
)

func (w *Worker) worker(ctx context.Context) {
	ticker := time.NewTicker(w.c.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.cancelStalePendingOrders(ctx); err != nil {
				slog.Default().ErrorContext(ctx, "can't cancel stale pending orders",
					slog.String("err", err.Error()),
				)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) cancelStalePendingOrders(ctx context.Context) error {
	olderThan := time.Now().Add(-w.c.PendingThreshold)
	orders, err := w.repo.Order().GetStalePendingOrders(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("can't get stale pending orders: %w", err)
	}

	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := w.repo.Order().CancelOrder(ctx, order.UUID); err != nil {
			slog.Default().ErrorContext(ctx, "can't cancel stale pending order",
				slog.String("err", err.Error()),
				slog.String("order_uuid", order.UUID),
				slog.Int("order_id", order.Id),
			)
			continue
		}

		slog.Default().InfoContext(ctx, "cancelled stale pending order",
			slog.String("order_uuid", order.UUID),
			slog.Int("order_id", order.Id),
		)
	}

	return nil
}
