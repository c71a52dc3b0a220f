package analytics

import (
	"strings"
	"time"

	"github.com/elarafragrance/elara-backend/internal/dto"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type granularity int

const (
	granularityDay granularity = iota
	granularityMonth
)

func (g granularity) key(t time.Time) string {
	if g == granularityMonth {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

func (g granularity) label(t time.Time) string {
	if g == granularityMonth {
		return t.Format("Jan")
	}
	return t.Format("Jan 2")
}

func (g granularity) bucketStart(t time.Time) time.Time {
	if g == granularityMonth {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (g granularity) bucketNext(t time.Time) time.Time {
	if g == granularityMonth {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

type chartAccum struct {
	revenue decimal.Decimal
	orders  int
}

type sliceAccum struct {
	count   int
	revenue decimal.Decimal
}

// aggregate folds the fetched window into the dashboard summary in one
// forward pass over orders. Cancelled orders are tallied for the status split
// and then skipped entirely; revenue, commission and all breakdowns accrue
// from delivered orders only.
func aggregate(
	orders []entity.OrderFull,
	reviews []entity.Review,
	startDate, now time.Time,
	g granularity,
) *dto.DashboardSummary {
	var (
		totalRevenue     = decimal.Zero
		totalCommissions = decimal.Zero
		totalOrders      int
		completed        int
		cancelled        int

		chart      = map[string]*chartAccum{}
		byCategory = map[string]*sliceAccum{}
		byProduct  = map[string]*sliceAccum{}
		byGender   = map[string]*sliceAccum{}
	)

	for _, order := range orders {
		if !order.Order.Status.CountsTowardOrderTotals() {
			cancelled++
			continue
		}
		totalOrders++

		if !order.Order.Status.ContributesToRevenue() {
			continue
		}
		completed++
		totalRevenue = totalRevenue.Add(order.Order.TotalPriceDecimal())
		totalCommissions = totalCommissions.Add(order.Order.CommissionDecimal())

		key := g.key(order.Order.Placed)
		point, ok := chart[key]
		if !ok {
			point = &chartAccum{revenue: decimal.Zero}
			chart[key] = point
		}
		point.revenue = point.revenue.Add(order.Order.TotalPriceDecimal())
		point.orders++

		for _, item := range order.Items {
			itemRevenue := item.ItemRevenue()
			accumInto(byCategory, item.DisplayCategory(), item.Quantity, itemRevenue)
			accumInto(byProduct, item.ProductName, item.Quantity, itemRevenue)
			accumInto(byGender, item.Gender.String(), item.Quantity, itemRevenue)
		}
	}

	averageOrderValue := 0.0
	if totalOrders > 0 {
		averageOrderValue = totalRevenue.
			Div(decimal.NewFromInt(int64(totalOrders))).
			Round(2).
			InexactFloat64()
	}

	totalReviews, averageRating, distribution := ratingStats(reviews)

	return &dto.DashboardSummary{
		TotalRevenue:      totalRevenue.Round(2).InexactFloat64(),
		TotalCommissions:  totalCommissions.Round(2).InexactFloat64(),
		TotalOrders:       totalOrders,
		AverageOrderValue: averageOrderValue,
		ChartData:         fillTimeSeriesGaps(chart, startDate, now, g),
		CategoryData:      categorySlices(byCategory),
		ProductData:       productSlices(byProduct),
		StatusData:        statusSlices(completed, cancelled),
		GenderData:        genderSlices(byGender),

		TotalReviews:       totalReviews,
		AverageRating:      averageRating,
		RatingDistribution: distribution,
	}
}

func accumInto(m map[string]*sliceAccum, key string, quantity int, revenue decimal.Decimal) {
	acc, ok := m[key]
	if !ok {
		acc = &sliceAccum{revenue: decimal.Zero}
		m[key] = acc
	}
	acc.count += quantity
	acc.revenue = acc.revenue.Add(revenue)
}

// fillTimeSeriesGaps walks every calendar unit from startDate to now
// inclusive and emits one point per step, zero-valued where no orders
// matched. The series length is a function of the window alone, never of
// order sparsity.
func fillTimeSeriesGaps(chart map[string]*chartAccum, startDate, now time.Time, g granularity) []dto.ChartPoint {
	var points []dto.ChartPoint

	cur := g.bucketStart(startDate)
	end := g.bucketStart(now)
	for !cur.After(end) {
		key := g.key(cur)
		point := dto.ChartPoint{
			Name: g.label(cur),
			Date: key,
		}
		if acc, ok := chart[key]; ok {
			point.Revenue = acc.revenue.Round(2).InexactFloat64()
			point.Orders = acc.orders
		}
		points = append(points, point)
		cur = g.bucketNext(cur)
	}
	return points
}

// categorySlices sorts by item count descending, name ascending on ties so
// repeated runs over the same window produce identical output. Untruncated.
func categorySlices(m map[string]*sliceAccum) []dto.CategorySlice {
	out := make([]dto.CategorySlice, 0, len(m))
	for name, acc := range m {
		out = append(out, dto.CategorySlice{
			Name:    name,
			Value:   acc.count,
			Revenue: acc.revenue.Round(2).InexactFloat64(),
		})
	}
	slices.SortFunc(out, func(a, b dto.CategorySlice) int {
		if a.Value != b.Value {
			return b.Value - a.Value
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// productSlices sorts by units sold descending and keeps the top 5.
func productSlices(m map[string]*sliceAccum) []dto.ProductSlice {
	out := make([]dto.ProductSlice, 0, len(m))
	for name, acc := range m {
		out = append(out, dto.ProductSlice{
			Name:    name,
			Sales:   acc.count,
			Revenue: acc.revenue.Round(2).InexactFloat64(),
		})
	}
	slices.SortFunc(out, func(a, b dto.ProductSlice) int {
		if a.Sales != b.Sales {
			return b.Sales - a.Sales
		}
		return strings.Compare(a.Name, b.Name)
	})
	if len(out) > topProductsLimit {
		out = out[:topProductsLimit]
	}
	return out
}

// genderSlices sorts by revenue descending. Untruncated.
func genderSlices(m map[string]*sliceAccum) []dto.GenderSlice {
	out := make([]dto.GenderSlice, 0, len(m))
	for name, acc := range m {
		out = append(out, dto.GenderSlice{
			Name:    name,
			Value:   acc.count,
			Revenue: acc.revenue.Round(2).InexactFloat64(),
		})
	}
	slices.SortFunc(out, func(a, b dto.GenderSlice) int {
		switch {
		case a.Revenue > b.Revenue:
			return -1
		case a.Revenue < b.Revenue:
			return 1
		default:
			return strings.Compare(a.Name, b.Name)
		}
	})
	return out
}

// statusSlices emits only the non-zero labels, Completed first.
func statusSlices(completed, cancelled int) []dto.StatusSlice {
	var out []dto.StatusSlice
	if completed > 0 {
		out = append(out, dto.StatusSlice{Name: "Completed", Value: completed})
	}
	if cancelled > 0 {
		out = append(out, dto.StatusSlice{Name: "Cancelled", Value: cancelled})
	}
	return out
}

// ratingStats computes the review count, mean rating and the fixed 5-to-1
// histogram. Reviews are independent of orders here: counted, never joined
// to order status.
func ratingStats(reviews []entity.Review) (int, float64, []dto.RatingBucket) {
	counts := map[int]int{}
	sum := 0
	for _, review := range reviews {
		counts[review.Rating]++
		sum += review.Rating
	}

	average := 0.0
	if len(reviews) > 0 {
		average = decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(len(reviews)))).
			Round(2).
			InexactFloat64()
	}

	distribution := make([]dto.RatingBucket, 0, entity.MaxRating)
	for rating := entity.MaxRating; rating >= entity.MinRating; rating-- {
		distribution = append(distribution, dto.RatingBucket{
			Rating: rating,
			Count:  counts[rating],
		})
	}
	return len(reviews), average, distribution
}
