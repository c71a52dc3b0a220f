package dto

// Period selects the reporting window for the dashboard. The window always
// ends "now"; the period only defines the inclusive start boundary.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var ValidPeriods = map[Period]bool{
	PeriodWeek:  true,
	PeriodMonth: true,
	PeriodYear:  true,
}

// ChartPoint is one calendar unit of the gapless time series. Date holds the
// bucket key (YYYY-MM-DD for daily buckets, YYYY-MM for monthly), Name a short
// human label for the chart axis.
type ChartPoint struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	Date    string  `json:"date"`
}

// CategorySlice is one category breakdown entry, sorted by item count.
type CategorySlice struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Revenue float64 `json:"revenue"`
}

// ProductSlice is one top-product entry, sorted by units sold.
type ProductSlice struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// StatusSlice is the completed-vs-cancelled split. Entries with a zero count
// are omitted, not zero-filled.
type StatusSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// GenderSlice is one gender-tag breakdown entry, sorted by revenue.
type GenderSlice struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Revenue float64 `json:"revenue"`
}

// RatingBucket is one row of the fixed 5-to-1 star histogram.
type RatingBucket struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// LowStockProduct is a product running low on stock.
type LowStockProduct struct {
	Id    int     `json:"id"`
	Name  string  `json:"name"`
	Stock int     `json:"stock"`
	Price float64 `json:"price"`
}

// DashboardSummary is the full dashboard payload for one period.
type DashboardSummary struct {
	TotalRevenue       float64           `json:"totalRevenue"`
	TotalCommissions   float64           `json:"totalCommissions"`
	TotalOrders        int               `json:"totalOrders"`
	AverageOrderValue  float64           `json:"averageOrderValue"`
	NewCustomersCount  int               `json:"newCustomersCount"`
	LowStockProducts   []LowStockProduct `json:"lowStockProducts"`
	ChartData          []ChartPoint      `json:"chartData"`
	CategoryData       []CategorySlice   `json:"categoryData"`
	ProductData        []ProductSlice    `json:"productData"`
	StatusData         []StatusSlice     `json:"statusData"`
	GenderData         []GenderSlice     `json:"genderData"`
	TotalReviews       int               `json:"totalReviews"`
	AverageRating      float64           `json:"averageRating"`
	RatingDistribution []RatingBucket    `json:"ratingDistribution"`
}
