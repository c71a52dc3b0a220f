package http

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/elarafragrance/elara-backend/internal/dto"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ses, _ := sessionFromCtx(ctx)

	req := &checkoutRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	customer, err := s.rep.Account().GetAccountById(ctx, ses.AccountId)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}

	if err := s.limiter.CheckOrderCreation(r.RemoteAddr, customer.Email); err != nil {
		render.Render(w, r, ErrTooManyRequests(err))
		return
	}

	order, err := s.rep.Order().CreateOrder(ctx, req.toOrderNew(), ses.AccountId)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create order",
			slog.String("err", err.Error()),
			slog.Int("customer_id", ses.AccountId),
		)
		render.Render(w, r, errDomain(err))
		return
	}

	view := checkoutView{Order: orderFullToView(order)}

	if order.Order.PaymentMethod == entity.OnlinePayment {
		clientSecret, err := s.invoicer.CreateInvoice(ctx, order.Order.UUID, order.Order.TotalPriceDecimal())
		if err != nil {
			slog.Default().ErrorContext(ctx, "can't create payment intent",
				slog.String("err", err.Error()),
				slog.String("order_uuid", order.Order.UUID),
			)
			// the order stays PENDING; the cleanup worker reaps it if the
			// payment is never retried
			render.Render(w, r, ErrInternalServerError(err))
			return
		}
		view.ClientSecret = clientSecret
	}

	if err := s.mailer.SendOrderConfirmation(ctx, s.rep, customer.Email, &dto.OrderConfirmed{
		OrderUUID:  order.Order.UUID,
		FullName:   customer.FullName(),
		TotalPrice: order.Order.TotalPriceDecimal().StringFixed(2),
		ItemsCount: len(order.Items),
	}); err != nil {
		slog.Default().ErrorContext(ctx, "can't send order confirmation",
			slog.String("err", err.Error()),
			slog.String("order_uuid", order.Order.UUID),
		)
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, view)
}

func (s *Server) listMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ses, _ := sessionFromCtx(ctx)
	limit, offset := paging(r)

	orders, err := s.rep.Order().GetOrdersPaged(ctx, "", ses.AccountId, limit, offset, entity.Descending)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, ordersToView(orders))
}

// myOrder loads the order and checks it belongs to the session customer.
func (s *Server) myOrder(r *http.Request) (*entity.OrderFull, error) {
	ctx := r.Context()
	ses, _ := sessionFromCtx(ctx)

	order, err := s.rep.Order().GetOrderByUUID(ctx, chi.URLParam(r, "uuid"))
	if err != nil {
		return nil, err
	}
	if order.Order.CustomerId != ses.AccountId {
		return nil, fmt.Errorf("order belongs to another customer")
	}
	return order, nil
}

func (s *Server) getMyOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.myOrder(r)
	if err != nil {
		render.Render(w, r, ErrNotFound(fmt.Errorf("order not found")))
		return
	}
	render.JSON(w, r, orderFullToView(order))
}

func (s *Server) cancelMyOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, err := s.myOrder(r)
	if err != nil {
		render.Render(w, r, ErrNotFound(fmt.Errorf("order not found")))
		return
	}

	if err := s.rep.Order().CancelOrder(ctx, order.Order.UUID); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}

	if customer, err := s.rep.Account().GetAccountById(ctx, order.Order.CustomerId); err == nil {
		if err := s.mailer.SendOrderCancellation(ctx, s.rep, customer.Email, &dto.OrderCancelled{
			OrderUUID: order.Order.UUID,
			FullName:  customer.FullName(),
		}); err != nil {
			slog.Default().ErrorContext(ctx, "can't send order cancellation",
				slog.String("err", err.Error()),
				slog.String("order_uuid", order.Order.UUID),
			)
		}
	}

	render.NoContent(w, r)
}
