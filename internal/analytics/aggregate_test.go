package analytics

import (
	"testing"
	"time"

	"github.com/elarafragrance/elara-backend/internal/dto"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func testOrder(status entity.OrderStatusName, total int64, commission int64, placed time.Time, items ...entity.OrderItem) entity.OrderFull {
	return entity.OrderFull{
		Order: entity.Order{
			TotalPrice: decimal.NewFromInt(total),
			Commission: decimal.NewFromInt(commission),
			Status:     status,
			Placed:     placed,
		},
		Items: items,
	}
}

func testItem(product, category string, gender entity.GenderEnum, price int64, qty int) entity.OrderItem {
	item := entity.OrderItem{
		ProductName: product,
		OrderItemInsert: entity.OrderItemInsert{
			ProductPrice: decimal.NewFromInt(price),
			Quantity:     qty,
		},
		Gender: gender,
	}
	if category != "" {
		item.CategoryName.String = category
		item.CategoryName.Valid = true
	}
	return item
}

func TestPeriodStart(t *testing.T) {
	t.Run("Week", func(t *testing.T) {
		start, err := periodStart(dto.PeriodWeek, testNow)
		require.NoError(t, err)
		assert.Equal(t, testNow.AddDate(0, 0, -7), start)
	})

	t.Run("Month", func(t *testing.T) {
		start, err := periodStart(dto.PeriodMonth, testNow)
		require.NoError(t, err)
		assert.Equal(t, testNow.AddDate(0, -1, 0), start)
	})

	t.Run("Year", func(t *testing.T) {
		start, err := periodStart(dto.PeriodYear, testNow)
		require.NoError(t, err)
		assert.Equal(t, testNow.AddDate(-1, 0, 0), start)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := periodStart(dto.Period("decade"), testNow)
		assert.Error(t, err)
	})
}

// Mirrors the canonical three-order case: one delivered, one cancelled, one
// pending. Only the delivered order accrues revenue; the pending order still
// counts toward the order total.
func TestAggregateStatusAccrual(t *testing.T) {
	startDate := testNow.AddDate(0, 0, -7)
	orders := []entity.OrderFull{
		testOrder(entity.Delivered, 100, 10, testNow.AddDate(0, 0, -1),
			testItem("Product X", "Eau de Parfum", entity.Women, 100, 1)),
		testOrder(entity.Cancelled, 50, 0, testNow.AddDate(0, 0, -2)),
		testOrder(entity.Pending, 30, 0, testNow.AddDate(0, 0, -3)),
	}

	summary := aggregate(orders, nil, startDate, testNow, granularityDay)

	assert.Equal(t, 2, summary.TotalOrders)
	assert.Equal(t, 100.0, summary.TotalRevenue)
	assert.Equal(t, 10.0, summary.TotalCommissions)
	assert.Equal(t, 50.0, summary.AverageOrderValue)
	assert.Equal(t, []dto.StatusSlice{
		{Name: "Completed", Value: 1},
		{Name: "Cancelled", Value: 1},
	}, summary.StatusData)
}

func TestAggregateEmptyYear(t *testing.T) {
	startDate := testNow.AddDate(-1, 0, 0)

	summary := aggregate(nil, nil, startDate, testNow, granularityMonth)

	// Jan 2025 through Jan 2026 inclusive.
	require.Len(t, summary.ChartData, 13)
	for _, point := range summary.ChartData {
		assert.Zero(t, point.Revenue)
		assert.Zero(t, point.Orders)
	}
	assert.Equal(t, "2025-01", summary.ChartData[0].Date)
	assert.Equal(t, "2026-01", summary.ChartData[12].Date)
	assert.Equal(t, "Jan", summary.ChartData[0].Name)

	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, summary.AverageOrderValue)
	assert.Empty(t, summary.StatusData)
}

func TestChartGapFilling(t *testing.T) {
	startDate := testNow.AddDate(0, 0, -7)

	// One delivered order three days ago, nothing else.
	orders := []entity.OrderFull{
		testOrder(entity.Delivered, 80, 0, testNow.AddDate(0, 0, -3),
			testItem("Noir Essence", "", entity.Unisex, 80, 1)),
	}

	summary := aggregate(orders, nil, startDate, testNow, granularityDay)

	// 8 calendar days inclusive of both boundaries.
	require.Len(t, summary.ChartData, 8)

	assert.Equal(t, "2026-01-08", summary.ChartData[0].Date)
	assert.Equal(t, "Jan 8", summary.ChartData[0].Name)
	assert.Equal(t, "2026-01-15", summary.ChartData[7].Date)

	nonZero := 0
	for _, point := range summary.ChartData {
		if point.Orders > 0 {
			nonZero++
			assert.Equal(t, "2026-01-12", point.Date)
			assert.Equal(t, 80.0, point.Revenue)
			assert.Equal(t, 1, point.Orders)
		}
	}
	assert.Equal(t, 1, nonZero)
}

func TestBreakdownSortingAndTruncation(t *testing.T) {
	startDate := testNow.AddDate(0, 0, -7)
	placed := testNow.AddDate(0, 0, -1)

	// Seven distinct products across two categories and genders.
	orders := []entity.OrderFull{
		testOrder(entity.Delivered, 1000, 0, placed,
			testItem("P1", "Eau de Parfum", entity.Women, 10, 7),
			testItem("P2", "Eau de Parfum", entity.Women, 10, 6),
			testItem("P3", "Body Mist", entity.Men, 10, 5),
			testItem("P4", "Body Mist", entity.Men, 10, 4),
			testItem("P5", "", entity.Unisex, 10, 3),
			testItem("P6", "", entity.Unisex, 10, 2),
			testItem("P7", "", entity.Unisex, 10, 1),
		),
	}

	summary := aggregate(orders, nil, startDate, testNow, granularityDay)

	t.Run("ProductTop5", func(t *testing.T) {
		require.Len(t, summary.ProductData, 5)
		assert.Equal(t, "P1", summary.ProductData[0].Name)
		assert.Equal(t, 7, summary.ProductData[0].Sales)
		for i := 1; i < len(summary.ProductData); i++ {
			assert.GreaterOrEqual(t, summary.ProductData[i-1].Sales, summary.ProductData[i].Sales)
		}
	})

	t.Run("CategoryUntruncatedByCount", func(t *testing.T) {
		require.Len(t, summary.CategoryData, 3)
		assert.Equal(t, "Eau de Parfum", summary.CategoryData[0].Name)
		assert.Equal(t, 13, summary.CategoryData[0].Value)
		assert.Equal(t, "Body Mist", summary.CategoryData[1].Name)
		assert.Equal(t, entity.UncategorizedLabel, summary.CategoryData[2].Name)
	})

	t.Run("GenderByRevenue", func(t *testing.T) {
		require.Len(t, summary.GenderData, 3)
		assert.Equal(t, "WOMEN", summary.GenderData[0].Name)
		assert.Equal(t, 130.0, summary.GenderData[0].Revenue)
		assert.Equal(t, "MEN", summary.GenderData[1].Name)
		assert.Equal(t, "UNISEX", summary.GenderData[2].Name)
	})
}

func TestStatusDataOmitsZeroes(t *testing.T) {
	startDate := testNow.AddDate(0, 0, -7)
	orders := []entity.OrderFull{
		testOrder(entity.Pending, 30, 0, testNow.AddDate(0, 0, -1)),
		testOrder(entity.Shipped, 40, 0, testNow.AddDate(0, 0, -2)),
	}

	summary := aggregate(orders, nil, startDate, testNow, granularityDay)

	// Neither delivered nor cancelled: the split is empty, not zero-filled.
	assert.Empty(t, summary.StatusData)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Zero(t, summary.TotalRevenue)
}

func TestRatingStats(t *testing.T) {
	reviews := []entity.Review{
		{ReviewInsert: entity.ReviewInsert{Rating: 5}},
		{ReviewInsert: entity.ReviewInsert{Rating: 5}},
		{ReviewInsert: entity.ReviewInsert{Rating: 4}},
		{ReviewInsert: entity.ReviewInsert{Rating: 1}},
	}

	total, average, distribution := ratingStats(reviews)

	assert.Equal(t, 4, total)
	assert.Equal(t, 3.75, average)
	assert.Equal(t, []dto.RatingBucket{
		{Rating: 5, Count: 2},
		{Rating: 4, Count: 1},
		{Rating: 3, Count: 0},
		{Rating: 2, Count: 0},
		{Rating: 1, Count: 1},
	}, distribution)

	t.Run("NoReviews", func(t *testing.T) {
		total, average, distribution := ratingStats(nil)
		assert.Zero(t, total)
		assert.Zero(t, average)
		require.Len(t, distribution, 5)
		assert.Equal(t, 5, distribution[0].Rating)
		assert.Equal(t, 1, distribution[4].Rating)
	})
}

// Re-running the fold over an unchanged window yields identical output.
func TestAggregateDeterministic(t *testing.T) {
	startDate := testNow.AddDate(0, 0, -7)
	placed := testNow.AddDate(0, 0, -2)
	orders := []entity.OrderFull{
		testOrder(entity.Delivered, 200, 20, placed,
			testItem("P1", "Eau de Parfum", entity.Women, 50, 2),
			testItem("P2", "Body Mist", entity.Men, 50, 2),
		),
		testOrder(entity.Delivered, 100, 5, placed,
			testItem("P3", "Eau de Parfum", entity.Unisex, 100, 1),
		),
	}
	reviews := []entity.Review{
		{ReviewInsert: entity.ReviewInsert{Rating: 4}},
	}

	first := aggregate(orders, reviews, startDate, testNow, granularityDay)
	second := aggregate(orders, reviews, startDate, testNow, granularityDay)

	assert.Equal(t, first, second)
}

func TestItemRevenueUsesSnapshotPrice(t *testing.T) {
	startDate := testNow.AddDate(0, 0, -7)

	// The line item snapshot price drives breakdown revenue, not the order
	// total: 3 × 40 = 120 even though the discounted order total is 100.
	orders := []entity.OrderFull{
		testOrder(entity.Delivered, 100, 0, testNow.AddDate(0, 0, -1),
			testItem("P1", "Eau de Parfum", entity.Women, 40, 3),
		),
	}

	summary := aggregate(orders, nil, startDate, testNow, granularityDay)

	assert.Equal(t, 100.0, summary.TotalRevenue)
	require.Len(t, summary.ProductData, 1)
	assert.Equal(t, 120.0, summary.ProductData[0].Revenue)
	assert.Equal(t, 3, summary.ProductData[0].Sales)
}
