package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/elarafragrance/elara-backend/internal/dto"
	"github.com/elarafragrance/elara-backend/internal/entity"
	gerr "github.com/elarafragrance/elara-backend/internal/errors"
	"github.com/elarafragrance/elara-backend/internal/otp"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
)

func (s *Server) agentOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ses, _ := sessionFromCtx(ctx)

	status := entity.OrderStatusName(r.URL.Query().Get("status"))
	if status != "" && !entity.ValidOrderStatusNames[status] {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid order status: %q", status)))
		return
	}

	orders, err := s.rep.Order().GetAgentOrders(ctx, ses.AccountId, status)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, ordersToView(orders))
}

// agentOrder loads the order and checks it is assigned to the session agent
// and still out for delivery.
func (s *Server) agentOrder(r *http.Request) (*entity.OrderFull, error) {
	ctx := r.Context()
	ses, _ := sessionFromCtx(ctx)

	order, err := s.rep.Order().GetOrderByUUID(ctx, chi.URLParam(r, "uuid"))
	if err != nil {
		return nil, err
	}
	if !order.Order.AgentId.Valid || int(order.Order.AgentId.Int32) != ses.AccountId {
		return nil, gerr.ErrOrderNotFound
	}
	if order.Order.Status != entity.OutForDelivery {
		return nil, fmt.Errorf("order is not out for delivery: %w", gerr.ErrBadStatusChange)
	}
	return order, nil
}

// issueDeliveryOTP generates a fresh code, stores it and emails it to the
// customer. A new code replaces any previous one and resets the attempt
// counter.
func (s *Server) issueDeliveryOTP(ctx context.Context, order *entity.OrderFull) error {
	code, err := otp.Generate()
	if err != nil {
		return fmt.Errorf("can't generate delivery code: %w", err)
	}

	expiresAt := time.Now().Add(otp.DefaultTTL)
	if err := s.rep.Order().UpsertDeliveryOTP(ctx, order.Order.Id, code, expiresAt); err != nil {
		return fmt.Errorf("can't store delivery code: %w", err)
	}

	customer, err := s.rep.Account().GetAccountById(ctx, order.Order.CustomerId)
	if err != nil {
		return fmt.Errorf("can't get customer: %w", err)
	}

	if err := s.mailer.SendDeliveryOTP(ctx, s.rep, customer.Email, &dto.DeliveryOTP{
		OrderUUID: order.Order.UUID,
		FullName:  customer.FullName(),
		Code:      code,
		ExpiresIn: otp.DefaultTTL.String(),
	}); err != nil {
		slog.Default().ErrorContext(ctx, "can't send delivery code",
			slog.String("err", err.Error()),
			slog.String("order_uuid", order.Order.UUID),
		)
	}
	return nil
}

func (s *Server) resendDeliveryOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, err := s.agentOrder(r)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}

	if err := s.limiter.CheckOTPResend(order.Order.UUID); err != nil {
		render.Render(w, r, ErrTooManyRequests(err))
		return
	}

	if err := s.issueDeliveryOTP(ctx, order); err != nil {
		slog.Default().ErrorContext(ctx, "can't reissue delivery code",
			slog.String("err", err.Error()),
			slog.String("order_uuid", order.Order.UUID),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.NoContent(w, r)
}

// verifyDeliveryOTP completes the handover: the agent submits the code the
// customer read out. On success the order is delivered and the agent
// commission is written.
func (s *Server) verifyDeliveryOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ses, _ := sessionFromCtx(ctx)

	order, err := s.agentOrder(r)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}

	req := &verifyOTPRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	stored, err := s.rep.Order().GetDeliveryOTP(ctx, order.Order.Id)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	if stored.Attempts >= otp.MaxAttempts {
		render.Render(w, r, errDomain(gerr.ErrOTPMaxAttempts))
		return
	}
	if time.Now().After(stored.ExpiresAt) {
		render.Render(w, r, errDomain(gerr.ErrOTPExpired))
		return
	}
	if stored.Code != req.Code {
		if err := s.rep.Order().IncrementOTPAttempts(ctx, order.Order.Id); err != nil {
			slog.Default().ErrorContext(ctx, "can't increment otp attempts",
				slog.String("err", err.Error()),
				slog.Int("order_id", order.Order.Id),
			)
		}
		render.Render(w, r, errDomain(gerr.ErrOTPMismatch))
		return
	}

	agent, err := s.rep.Account().GetAccountById(ctx, ses.AccountId)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	commission := commissionFor(agent, order.Order.TotalPriceDecimal(), s.c.DefaultCommissionPct)

	if err := s.rep.Order().DeliverOrder(ctx, order.Order.UUID, commission); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}

	if customer, err := s.rep.Account().GetAccountById(ctx, order.Order.CustomerId); err == nil {
		if err := s.mailer.SendOrderDelivered(ctx, s.rep, customer.Email, &dto.OrderDelivered{
			OrderUUID: order.Order.UUID,
			FullName:  customer.FullName(),
		}); err != nil {
			slog.Default().ErrorContext(ctx, "can't send delivery confirmation",
				slog.String("err", err.Error()),
				slog.String("order_uuid", order.Order.UUID),
			)
		}
	}

	delivered, err := s.rep.Order().GetOrderByUUID(ctx, order.Order.UUID)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, orderFullToView(delivered))
}

// commissionFor computes the agent commission for an order total, falling
// back to the service-wide default percentage for agents without one of
// their own.
func commissionFor(agent *entity.Account, total decimal.Decimal, defaultPct float64) decimal.Decimal {
	if !agent.CommissionPct.Valid && defaultPct > 0 {
		return total.Mul(decimal.NewFromFloat(defaultPct)).Div(decimal.NewFromInt(100)).Round(2)
	}
	return agent.CommissionFor(total)
}
