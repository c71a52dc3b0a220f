package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/entity"
	gerr "github.com/elarafragrance/elara-backend/internal/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type orderStore struct {
	*MYSQLStore
}

// Order returns an object implementing Order interface
func (ms *MYSQLStore) Order() dependency.Order {
	return &orderStore{
		MYSQLStore: ms,
	}
}

// validateOrderItems checks every item against the live product rows and
// returns the items with the current effective price snapshotted in.
func validateOrderItems(ctx context.Context, rep dependency.Repository, items []entity.OrderItemInsert) ([]entity.OrderItemInsert, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, fmt.Errorf("order has no items")
	}

	subtotal := decimal.Zero
	validated := make([]entity.OrderItemInsert, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("product %d: quantity must be positive", item.ProductId)
		}
		prd, err := rep.Products().GetProductById(ctx, item.ProductId)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("product %d: %w", item.ProductId, err)
		}
		if prd.Archived {
			return nil, decimal.Zero, fmt.Errorf("product %d is archived: %w", item.ProductId, gerr.ErrProductNotFound)
		}
		if prd.Stock < item.Quantity {
			return nil, decimal.Zero, fmt.Errorf("product %d: %w", item.ProductId, gerr.ErrInsufficientStock)
		}
		item.ProductPrice = prd.EffectivePrice()
		subtotal = subtotal.Add(item.ItemRevenue())
		validated = append(validated, item)
	}
	return validated, subtotal, nil
}

// resolvePromo looks the code up in the cache and checks its validity window.
func (ms *MYSQLStore) resolvePromo(code string) (*entity.PromoCode, error) {
	if code == "" {
		return nil, nil
	}
	promo, ok := ms.cache.GetPromoByCode(code)
	if !ok {
		return nil, gerr.ErrPromoNotValid
	}
	if !promo.IsAllowed(ms.Now()) {
		return nil, gerr.ErrPromoNotValid
	}
	return &promo, nil
}

// CreateOrder validates the items against live products, snapshots their
// prices, applies the promo code, reduces stock and inserts the order with
// its items, all inside one serializable transaction.
func (ms *MYSQLStore) CreateOrder(ctx context.Context, orderNew *entity.OrderNew, customerId int) (*entity.OrderFull, error) {
	if !entity.ValidPaymentMethodNames[orderNew.PaymentMethod] {
		return nil, fmt.Errorf("invalid payment method: %s", orderNew.PaymentMethod)
	}

	var orderFull *entity.OrderFull
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		items, subtotal, err := validateOrderItems(ctx, rep, orderNew.Items)
		if err != nil {
			return err
		}

		promo, err := ms.resolvePromo(orderNew.PromoCode)
		if err != nil {
			return err
		}

		total := subtotal
		promoId := sql.NullInt32{}
		if promo != nil {
			total = promo.SubtotalWithPromo(subtotal)
			promoId = sql.NullInt32{Int32: int32(promo.Id), Valid: true}
		}

		if err := rep.Products().ReduceStock(ctx, items); err != nil {
			return fmt.Errorf("can't reduce stock: %w", err)
		}

		orderUUID := uuid.New().String()
		now := rep.Now()
		orderId, err := ExecNamedLastId(ctx, rep.DB(), `
		INSERT INTO customer_order (uuid, customer_id, total_price, status, payment_method, promo_id, address, placed, modified) VALUES
			(:uuid, :customerId, :totalPrice, :status, :paymentMethod, :promoId, :address, :placed, :modified)`, map[string]any{
			"uuid":          orderUUID,
			"customerId":    customerId,
			"totalPrice":    total,
			"status":        entity.Pending.String(),
			"paymentMethod": string(orderNew.PaymentMethod),
			"promoId":       promoId,
			"address":       orderNew.Address,
			"placed":        now,
			"modified":      now,
		})
		if err != nil {
			return fmt.Errorf("can't insert order: %w", err)
		}

		rows := make([]map[string]any, 0, len(items))
		for _, item := range items {
			rows = append(rows, map[string]any{
				"order_id":      orderId,
				"product_id":    item.ProductId,
				"product_price": item.ProductPriceDecimal(),
				"quantity":      item.Quantity,
			})
		}
		if err := BulkInsert(ctx, rep.DB(), "order_item", rows); err != nil {
			return fmt.Errorf("can't insert order items: %w", err)
		}

		orderFull, err = rep.Order().GetOrderById(ctx, orderId)
		if err != nil {
			return fmt.Errorf("can't get created order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orderFull, nil
}

func (ms *MYSQLStore) getOrderItems(ctx context.Context, orderId int) ([]entity.OrderItem, error) {
	items, err := QueryListNamed[entity.OrderItem](ctx, ms.DB(), `
	SELECT oi.id, oi.order_id, oi.product_id, oi.product_price, oi.quantity,
		p.name AS product_name, p.gender, c.name AS category_name
	FROM order_item oi
	JOIN product p ON p.id = oi.product_id
	LEFT JOIN category c ON c.id = p.category_id
	WHERE oi.order_id = :orderId
	ORDER BY oi.id ASC`, map[string]any{
		"orderId": orderId,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get order items: %w", err)
	}
	return items, nil
}

func (ms *MYSQLStore) GetOrderByUUID(ctx context.Context, orderUUID string) (*entity.OrderFull, error) {
	order, err := QueryNamedOne[entity.Order](ctx, ms.DB(), `
	SELECT * FROM customer_order WHERE uuid = :uuid`, map[string]any{
		"uuid": orderUUID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrOrderNotFound
		}
		return nil, fmt.Errorf("can't get order by uuid: %w", err)
	}

	items, err := ms.getOrderItems(ctx, order.Id)
	if err != nil {
		return nil, err
	}
	return &entity.OrderFull{Order: order, Items: items}, nil
}

func (ms *MYSQLStore) GetOrderById(ctx context.Context, orderId int) (*entity.OrderFull, error) {
	order, err := QueryNamedOne[entity.Order](ctx, ms.DB(), `
	SELECT * FROM customer_order WHERE id = :id`, map[string]any{
		"id": orderId,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrOrderNotFound
		}
		return nil, fmt.Errorf("can't get order by id: %w", err)
	}

	items, err := ms.getOrderItems(ctx, order.Id)
	if err != nil {
		return nil, err
	}
	return &entity.OrderFull{Order: order, Items: items}, nil
}

func (ms *MYSQLStore) GetOrdersPaged(
	ctx context.Context,
	status entity.OrderStatusName,
	customerId, limit, offset int,
	of entity.OrderFactor,
) ([]entity.Order, error) {
	where := "1 = 1"
	params := map[string]any{
		"limit":  limit,
		"offset": offset,
	}
	if status != "" {
		if !entity.ValidOrderStatusNames[status] {
			return nil, fmt.Errorf("invalid order status: %s", status)
		}
		where += " AND status = :status"
		params["status"] = status.String()
	}
	if customerId > 0 {
		where += " AND customer_id = :customerId"
		params["customerId"] = customerId
	}

	query := fmt.Sprintf(`
	SELECT * FROM customer_order
	WHERE %s
	ORDER BY placed %s
	LIMIT :limit OFFSET :offset`, where, of.String())

	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("can't get order list: %w", err)
	}
	return orders, nil
}

// GetOrdersWithItemsSince returns orders placed at or after the given time,
// ascending by placement, each with its line items. Items are fetched in one
// query and grouped in memory to avoid a per-order round trip.
func (ms *MYSQLStore) GetOrdersWithItemsSince(ctx context.Context, since time.Time) ([]entity.OrderFull, error) {
	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), `
	SELECT * FROM customer_order
	WHERE placed >= :since
	ORDER BY placed ASC`, map[string]any{
		"since": since,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get orders since: %w", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	items, err := QueryListNamed[entity.OrderItem](ctx, ms.DB(), `
	SELECT oi.id, oi.order_id, oi.product_id, oi.product_price, oi.quantity,
		p.name AS product_name, p.gender, c.name AS category_name
	FROM order_item oi
	JOIN product p ON p.id = oi.product_id
	LEFT JOIN category c ON c.id = p.category_id
	JOIN customer_order o ON o.id = oi.order_id
	WHERE o.placed >= :since
	ORDER BY oi.id ASC`, map[string]any{
		"since": since,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get order items since: %w", err)
	}

	itemsByOrder := make(map[int][]entity.OrderItem, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderId] = append(itemsByOrder[item.OrderId], item)
	}

	full := make([]entity.OrderFull, 0, len(orders))
	for _, order := range orders {
		full = append(full, entity.OrderFull{
			Order: order,
			Items: itemsByOrder[order.Id],
		})
	}
	return full, nil
}

// SetOrderStatus applies a forward transition, rejecting anything the status
// machine does not allow.
func (ms *MYSQLStore) SetOrderStatus(ctx context.Context, orderUUID string, next entity.OrderStatusName) error {
	if !entity.ValidOrderStatusNames[next] {
		return fmt.Errorf("invalid order status: %s", next)
	}
	// cancellation restores stock and clears the delivery code, so it always
	// goes through CancelOrder
	if next == entity.Cancelled {
		return ms.CancelOrder(ctx, orderUUID)
	}
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		order, err := rep.Order().GetOrderByUUID(ctx, orderUUID)
		if err != nil {
			return err
		}
		if !order.Order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%s -> %s: %w", order.Order.Status, next, gerr.ErrBadStatusChange)
		}
		return ExecNamed(ctx, rep.DB(), `
		UPDATE customer_order SET status = :status, modified = :modified WHERE uuid = :uuid`, map[string]any{
			"uuid":     orderUUID,
			"status":   next.String(),
			"modified": rep.Now(),
		})
	})
}

// AssignAgent puts the order out for delivery with the given agent.
func (ms *MYSQLStore) AssignAgent(ctx context.Context, orderUUID string, agentId int) error {
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		order, err := rep.Order().GetOrderByUUID(ctx, orderUUID)
		if err != nil {
			return err
		}
		if !order.Order.Status.CanTransitionTo(entity.OutForDelivery) {
			return fmt.Errorf("%s -> %s: %w", order.Order.Status, entity.OutForDelivery, gerr.ErrBadStatusChange)
		}
		return ExecNamed(ctx, rep.DB(), `
		UPDATE customer_order
		SET status = :status, agent_id = :agentId, modified = :modified
		WHERE uuid = :uuid`, map[string]any{
			"uuid":     orderUUID,
			"status":   entity.OutForDelivery.String(),
			"agentId":  agentId,
			"modified": rep.Now(),
		})
	})
}

func (ms *MYSQLStore) GetAgentOrders(ctx context.Context, agentId int, status entity.OrderStatusName) ([]entity.Order, error) {
	where := "agent_id = :agentId"
	params := map[string]any{
		"agentId": agentId,
	}
	if status != "" {
		if !entity.ValidOrderStatusNames[status] {
			return nil, fmt.Errorf("invalid order status: %s", status)
		}
		where += " AND status = :status"
		params["status"] = status.String()
	}

	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), fmt.Sprintf(`
	SELECT * FROM customer_order
	WHERE %s
	ORDER BY placed DESC`, where), params)
	if err != nil {
		return nil, fmt.Errorf("can't get agent orders: %w", err)
	}
	return orders, nil
}

// DeliverOrder marks the order delivered and writes the agent commission.
// Commission is the only field written after an order reaches its terminal
// status, and it happens in the same statement.
func (ms *MYSQLStore) DeliverOrder(ctx context.Context, orderUUID string, commission decimal.Decimal) error {
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		order, err := rep.Order().GetOrderByUUID(ctx, orderUUID)
		if err != nil {
			return err
		}
		if !order.Order.Status.CanTransitionTo(entity.Delivered) {
			return fmt.Errorf("%s -> %s: %w", order.Order.Status, entity.Delivered, gerr.ErrBadStatusChange)
		}
		if err := ExecNamed(ctx, rep.DB(), `
		UPDATE customer_order
		SET status = :status, commission = :commission, modified = :modified
		WHERE uuid = :uuid`, map[string]any{
			"uuid":       orderUUID,
			"status":     entity.Delivered.String(),
			"commission": commission.Round(2),
			"modified":   rep.Now(),
		}); err != nil {
			return fmt.Errorf("can't deliver order: %w", err)
		}
		return rep.Order().DeleteDeliveryOTP(ctx, order.Order.Id)
	})
}

// CancelOrder cancels the order and restores the stock its items held.
func (ms *MYSQLStore) CancelOrder(ctx context.Context, orderUUID string) error {
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		order, err := rep.Order().GetOrderByUUID(ctx, orderUUID)
		if err != nil {
			return err
		}
		if !order.Order.Status.CanTransitionTo(entity.Cancelled) {
			return fmt.Errorf("%s -> %s: %w", order.Order.Status, entity.Cancelled, gerr.ErrBadStatusChange)
		}

		items := make([]entity.OrderItemInsert, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, item.OrderItemInsert)
		}
		if err := rep.Products().RestoreStock(ctx, items); err != nil {
			return fmt.Errorf("can't restore stock: %w", err)
		}

		if err := ExecNamed(ctx, rep.DB(), `
		UPDATE customer_order SET status = :status, modified = :modified WHERE uuid = :uuid`, map[string]any{
			"uuid":     orderUUID,
			"status":   entity.Cancelled.String(),
			"modified": rep.Now(),
		}); err != nil {
			return fmt.Errorf("can't cancel order: %w", err)
		}
		return rep.Order().DeleteDeliveryOTP(ctx, order.Order.Id)
	})
}

func (ms *MYSQLStore) GetStalePendingOrders(ctx context.Context, olderThan time.Time) ([]entity.Order, error) {
	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), `
	SELECT * FROM customer_order
	WHERE status = :status AND placed < :olderThan
	ORDER BY placed ASC`, map[string]any{
		"status":    entity.Pending.String(),
		"olderThan": olderThan,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get stale pending orders: %w", err)
	}
	return orders, nil
}

func (ms *MYSQLStore) UpsertDeliveryOTP(ctx context.Context, orderId int, code string, expiresAt time.Time) error {
	err := ExecNamed(ctx, ms.DB(), `
	INSERT INTO delivery_otp (order_id, code, expires_at, attempts) VALUES (:orderId, :code, :expiresAt, 0)
	ON DUPLICATE KEY UPDATE code = :code, expires_at = :expiresAt, attempts = 0`, map[string]any{
		"orderId":   orderId,
		"code":      code,
		"expiresAt": expiresAt,
	})
	if err != nil {
		return fmt.Errorf("can't upsert delivery otp: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) GetDeliveryOTP(ctx context.Context, orderId int) (*entity.DeliveryOTP, error) {
	otp, err := QueryNamedOne[entity.DeliveryOTP](ctx, ms.DB(), `
	SELECT * FROM delivery_otp WHERE order_id = :orderId`, map[string]any{
		"orderId": orderId,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrOTPNotFound
		}
		return nil, fmt.Errorf("can't get delivery otp: %w", err)
	}
	return &otp, nil
}

func (ms *MYSQLStore) IncrementOTPAttempts(ctx context.Context, orderId int) error {
	err := ExecNamed(ctx, ms.DB(), `
	UPDATE delivery_otp SET attempts = attempts + 1 WHERE order_id = :orderId`, map[string]any{
		"orderId": orderId,
	})
	if err != nil {
		return fmt.Errorf("can't increment otp attempts: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) DeleteDeliveryOTP(ctx context.Context, orderId int) error {
	err := ExecNamed(ctx, ms.DB(), `
	DELETE FROM delivery_otp WHERE order_id = :orderId`, map[string]any{
		"orderId": orderId,
	})
	if err != nil {
		return fmt.Errorf("can't delete delivery otp: %w", err)
	}
	return nil
}
