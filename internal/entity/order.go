package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusName is the custom type to enforce enum-like behavior
type OrderStatusName string

const (
	Pending        OrderStatusName = "PENDING"
	Processing     OrderStatusName = "PROCESSING"
	Shipped        OrderStatusName = "SHIPPED"
	OutForDelivery OrderStatusName = "OUT_FOR_DELIVERY"
	Delivered      OrderStatusName = "DELIVERED"
	Cancelled      OrderStatusName = "CANCELLED"
)

func (osn OrderStatusName) String() string {
	return string(osn)
}

// ValidOrderStatusNames is a set of valid order status names
var ValidOrderStatusNames = map[OrderStatusName]bool{
	Pending:        true,
	Processing:     true,
	Shipped:        true,
	OutForDelivery: true,
	Delivered:      true,
	Cancelled:      true,
}

// ContributesToRevenue reports whether orders in this status accrue
// revenue and commission. Only delivered orders do.
func (osn OrderStatusName) ContributesToRevenue() bool {
	return osn == Delivered
}

// CountsTowardOrderTotals reports whether orders in this status are counted
// in order totals. Every status except CANCELLED counts, pending included.
func (osn OrderStatusName) CountsTowardOrderTotals() bool {
	return osn != Cancelled
}

// IsTerminal reports whether no further transitions are possible.
// Commission fields are still written at delivery time.
func (osn OrderStatusName) IsTerminal() bool {
	return osn == Delivered || osn == Cancelled
}

var statusRank = map[OrderStatusName]int{
	Pending:        0,
	Processing:     1,
	Shipped:        2,
	OutForDelivery: 3,
	Delivered:      4,
}

// CanTransitionTo reports whether a forward transition from osn to next is
// allowed. Cancellation is reachable from any non-terminal status; all other
// transitions must move the order forward.
func (osn OrderStatusName) CanTransitionTo(next OrderStatusName) bool {
	if osn.IsTerminal() {
		return false
	}
	if next == Cancelled {
		return true
	}
	cur, ok := statusRank[osn]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}

// PaymentMethodName is the checkout payment method.
type PaymentMethodName string

const (
	CashOnDelivery PaymentMethodName = "COD"
	OnlinePayment  PaymentMethodName = "ONLINE"
)

var ValidPaymentMethodNames = map[PaymentMethodName]bool{
	CashOnDelivery: true,
	OnlinePayment:  true,
}

// Order represents the customer_order table
type Order struct {
	Id            int               `db:"id"`
	UUID          string            `db:"uuid"`
	CustomerId    int               `db:"customer_id"`
	AgentId       sql.NullInt32     `db:"agent_id"`
	TotalPrice    decimal.Decimal   `db:"total_price"`
	Commission    decimal.Decimal   `db:"commission"`
	Status        OrderStatusName   `db:"status"`
	PaymentMethod PaymentMethodName `db:"payment_method"`
	PromoId       sql.NullInt32     `db:"promo_id"`
	Address       string            `db:"address"`
	Placed        time.Time         `db:"placed"`
	Modified      time.Time         `db:"modified"`
}

func (o *Order) TotalPriceDecimal() decimal.Decimal {
	return o.TotalPrice.Round(2)
}

func (o *Order) CommissionDecimal() decimal.Decimal {
	return o.Commission.Round(2)
}

// OrderItemInsert carries the price-at-purchase snapshot, decoupled from the
// live product price.
type OrderItemInsert struct {
	ProductId    int             `db:"product_id" valid:"required"`
	ProductPrice decimal.Decimal `db:"product_price"`
	Quantity     int             `db:"quantity" valid:"required"`
}

func (oii *OrderItemInsert) ProductPriceDecimal() decimal.Decimal {
	return oii.ProductPrice.Round(2)
}

// ItemRevenue is the snapshot unit price times quantity.
func (oii *OrderItemInsert) ItemRevenue() decimal.Decimal {
	return oii.ProductPriceDecimal().Mul(decimal.NewFromInt(int64(oii.Quantity)))
}

// OrderItem represents the order_item table joined with product and category
// display data.
type OrderItem struct {
	Id          int    `db:"id"`
	OrderId     int    `db:"order_id"`
	ProductName string `db:"product_name"`
	OrderItemInsert
	CategoryName sql.NullString `db:"category_name"`
	Gender       GenderEnum     `db:"gender"`
}

func (oi *OrderItem) DisplayCategory() string {
	if oi.CategoryName.Valid && oi.CategoryName.String != "" {
		return oi.CategoryName.String
	}
	return UncategorizedLabel
}

// OrderNew is the checkout payload.
type OrderNew struct {
	Items         []OrderItemInsert `valid:"required"`
	PaymentMethod PaymentMethodName `valid:"required"`
	Address       string            `valid:"required"`
	PromoCode     string            `valid:"-"`
}

// OrderFull is an order with its line items.
type OrderFull struct {
	Order Order
	Items []OrderItem
}

// DeliveryOTP represents the delivery_otp table. The code is generated when
// an order goes out for delivery and verified by the agent at handover.
type DeliveryOTP struct {
	OrderId   int       `db:"order_id"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
	Attempts  int       `db:"attempts"`
	CreatedAt time.Time `db:"created_at"`
}
