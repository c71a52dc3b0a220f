package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/elarafragrance/elara-backend/internal/dto"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
)

func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &productRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	id, err := s.rep.Products().AddProduct(ctx, req.toProductInsert())
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't add product",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, errDomain(err))
		return
	}

	product, err := s.rep.Products().GetProductById(ctx, id)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, productToView(product))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlIntParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	req := &productRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Products().UpdateProduct(ctx, req.toProductInsert(), id); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}

	product, err := s.rep.Products().GetProductById(ctx, id)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, productToView(product))
}

func (s *Server) archiveProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlIntParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	archived := r.URL.Query().Get("restore") != "true"
	if err := s.rep.Products().ArchiveProductById(ctx, id, archived); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlIntParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Products().DeleteProductById(ctx, id); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) uploadProductImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &imageUploadRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	url, blurhash, err := s.fileStore.UploadProductImage(ctx, req.RawB64Image, req.ImageName)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't upload product image",
			slog.String("err", err.Error()),
			slog.String("image_name", req.ImageName),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.JSON(w, r, map[string]string{
		"url":      url,
		"blurhash": blurhash,
	})
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &categoryRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	id, err := s.rep.Products().AddCategory(ctx, req.Name)
	if err != nil {
		if s.rep.IsErrUniqueViolation(err) {
			render.Render(w, r, ErrConflict(fmt.Errorf("category already exists")))
			return
		}
		render.Render(w, r, errDomain(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, categoryView{Id: id, Name: req.Name})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlIntParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Products().DeleteCategoryById(ctx, id); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) addPromo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &promoRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	expiration, err := time.Parse(time.RFC3339, req.Expiration)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("bad expiration: %w", err)))
		return
	}
	start := time.Now()
	if req.Start != "" {
		start, err = time.Parse(time.RFC3339, req.Start)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf("bad start: %w", err)))
			return
		}
	}

	insert := &entity.PromoCodeInsert{
		Code:       req.Code,
		Discount:   decimal.NewFromFloat(req.Discount),
		Start:      start,
		Expiration: expiration,
		Allowed:    req.Allowed,
	}
	if err := s.rep.Promo().AddPromo(ctx, insert); err != nil {
		if s.rep.IsErrUniqueViolation(err) {
			render.Render(w, r, ErrConflict(fmt.Errorf("promo code already exists")))
			return
		}
		render.Render(w, r, errDomain(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) listPromos(w http.ResponseWriter, r *http.Request) {
	limit, offset := paging(r)
	promos, err := s.rep.Promo().ListPromos(r.Context(), limit, offset, entity.Descending)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, promosToView(promos))
}

func (s *Server) disablePromo(w http.ResponseWriter, r *http.Request) {
	if err := s.rep.Promo().DisablePromoCode(r.Context(), chi.URLParam(r, "code")); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) deletePromo(w http.ResponseWriter, r *http.Request) {
	if err := s.rep.Promo().DeletePromoCode(r.Context(), chi.URLParam(r, "code")); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := paging(r)

	status := entity.OrderStatusName(r.URL.Query().Get("status"))
	if status != "" && !entity.ValidOrderStatusNames[status] {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid order status: %q", status)))
		return
	}

	orders, err := s.rep.Order().GetOrdersPaged(ctx, status, 0, limit, offset, entity.Descending)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, ordersToView(orders))
}

func (s *Server) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderUUID := chi.URLParam(r, "uuid")

	req := &statusChangeRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	next := entity.OrderStatusName(req.Status)

	if err := s.rep.Order().SetOrderStatus(ctx, orderUUID, next); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}

	s.notifyStatusChange(ctx, orderUUID, next)
	render.NoContent(w, r)
}

// notifyStatusChange emails the customer on transitions they care about.
// Failures are logged, never surfaced: the transition already happened.
func (s *Server) notifyStatusChange(ctx context.Context, orderUUID string, next entity.OrderStatusName) {
	if next != entity.Shipped && next != entity.Cancelled {
		return
	}

	order, err := s.rep.Order().GetOrderByUUID(ctx, orderUUID)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get order for status mail",
			slog.String("err", err.Error()),
			slog.String("order_uuid", orderUUID),
		)
		return
	}
	customer, err := s.rep.Account().GetAccountById(ctx, order.Order.CustomerId)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't get customer for status mail",
			slog.String("err", err.Error()),
			slog.String("order_uuid", orderUUID),
		)
		return
	}

	switch next {
	case entity.Shipped:
		err = s.mailer.SendOrderShipped(ctx, s.rep, customer.Email, &dto.OrderShipped{
			OrderUUID: orderUUID,
			FullName:  customer.FullName(),
		})
	case entity.Cancelled:
		err = s.mailer.SendOrderCancellation(ctx, s.rep, customer.Email, &dto.OrderCancelled{
			OrderUUID: orderUUID,
			FullName:  customer.FullName(),
		})
	}
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't send status mail",
			slog.String("err", err.Error()),
			slog.String("order_uuid", orderUUID),
			slog.String("status", next.String()),
		)
	}
}

// assignAgent puts the order out for delivery and issues the delivery code to
// the customer.
func (s *Server) assignAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderUUID := chi.URLParam(r, "uuid")

	req := &assignAgentRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	agent, err := s.rep.Account().GetAccountById(ctx, req.AgentId)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	if agent.Role != entity.RoleAgent {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("account %d is not a delivery agent", req.AgentId)))
		return
	}

	if err := s.rep.Order().AssignAgent(ctx, orderUUID, agent.Id); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}

	order, err := s.rep.Order().GetOrderByUUID(ctx, orderUUID)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	if err := s.issueDeliveryOTP(ctx, order); err != nil {
		slog.Default().ErrorContext(ctx, "can't issue delivery code",
			slog.String("err", err.Error()),
			slog.String("order_uuid", orderUUID),
		)
	}
	render.JSON(w, r, orderFullToView(order))
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := paging(r)

	role := entity.RoleName(r.URL.Query().Get("role"))
	if role == "" {
		role = entity.RoleCustomer
	}
	if !entity.ValidRoleNames[role] {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid role: %q", role)))
		return
	}

	accounts, err := s.rep.Account().ListAccountsByRole(ctx, role, limit, offset)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, accountsToView(accounts))
}

func (s *Server) addAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := &addAgentRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	insert := &entity.AccountInsert{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Role:          entity.RoleAgent,
		CommissionPct: agentCommissionPct(req.CommissionPct),
	}
	if req.Phone != "" {
		insert.Phone.String, insert.Phone.Valid = req.Phone, true
	}

	id, err := s.rep.Account().AddAccount(ctx, insert, hash)
	if err != nil {
		if s.rep.IsErrUniqueViolation(err) {
			render.Render(w, r, ErrConflict(fmt.Errorf("email already registered")))
			return
		}
		render.Render(w, r, errDomain(err))
		return
	}

	agent, err := s.rep.Account().GetAccountById(ctx, id)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, accountToView(agent))
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := urlIntParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := s.rep.Review().DeleteReviewById(r.Context(), id); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.NoContent(w, r)
}
