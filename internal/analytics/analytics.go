package analytics

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/dto"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"golang.org/x/sync/errgroup"
)

const (
	lowStockThreshold = 10
	lowStockLimit     = 5
	topProductsLimit  = 5
)

// Service computes the admin dashboard summary. It is stateless: every call
// fetches the window it needs and folds it in memory, so concurrent calls
// are independent.
type Service struct {
	rep dependency.Repository
}

func New(rep dependency.Repository) *Service {
	return &Service{rep: rep}
}

// periodStart returns the inclusive window start for the period. The window
// always ends at now; calendar stepping is literal, so a year window can span
// 13 month buckets depending on the day of month.
func periodStart(period dto.Period, now time.Time) (time.Time, error) {
	switch period {
	case dto.PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case dto.PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	case dto.PeriodYear:
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("invalid period: %q", period)
	}
}

func granularityFor(period dto.Period) granularity {
	if period == dto.PeriodYear {
		return granularityMonth
	}
	return granularityDay
}

// GetDashboardSummary builds the full dashboard payload for the period. The
// four independent fetches run concurrently; the fold over orders is a single
// forward pass. Any fetch failure fails the whole call, never a partial
// summary.
func (s *Service) GetDashboardSummary(ctx context.Context, period dto.Period) (*dto.DashboardSummary, error) {
	now := time.Now()
	startDate, err := periodStart(period, now)
	if err != nil {
		return nil, err
	}

	var (
		orders       []entity.OrderFull
		newCustomers int
		lowStock     []entity.Product
		reviews      []entity.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.rep.Order().GetOrdersWithItemsSince(gctx, startDate)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		newCustomers, err = s.rep.Account().CountCustomersSince(gctx, startDate)
		if err != nil {
			return fmt.Errorf("new customers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		lowStock, err = s.rep.Products().GetLowStockProducts(gctx, lowStockThreshold, lowStockLimit)
		if err != nil {
			return fmt.Errorf("low stock: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reviews, err = s.rep.Review().GetReviewsSince(gctx, startDate)
		if err != nil {
			return fmt.Errorf("reviews: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Default().ErrorContext(ctx, "dashboard aggregation failed",
			slog.String("period", string(period)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("can't fetch dashboard data: %w", err)
	}

	summary := aggregate(orders, reviews, startDate, now, granularityFor(period))
	summary.NewCustomersCount = newCustomers
	summary.LowStockProducts = lowStockToDTO(lowStock)

	return summary, nil
}

func lowStockToDTO(products []entity.Product) []dto.LowStockProduct {
	out := make([]dto.LowStockProduct, 0, len(products))
	for _, p := range products {
		out = append(out, dto.LowStockProduct{
			Id:    p.Id,
			Name:  p.Name,
			Stock: p.Stock,
			Price: p.PriceDecimal().InexactFloat64(),
		})
	}
	return out
}
