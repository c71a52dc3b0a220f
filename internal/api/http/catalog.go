package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paging parses limit/offset query params with sane bounds.
func paging(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func urlIntParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("bad %s param", name)
	}
	return v, nil
}

func productFilterFromQuery(r *http.Request, showArchived bool) *entity.ProductFilter {
	f := &entity.ProductFilter{ShowArchived: showArchived}
	if v, err := strconv.Atoi(r.URL.Query().Get("categoryId")); err == nil && v > 0 {
		f.CategoryId = v
	}
	if g := entity.GenderEnum(r.URL.Query().Get("gender")); entity.IsValidGender(g) {
		f.Gender = g
	}
	return f
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, offset := paging(r)

	sortFactor := entity.SortFactor(r.URL.Query().Get("sort"))
	orderFactor := entity.OrderFactor(r.URL.Query().Get("order"))

	products, total, err := s.rep.Products().GetProductsPaged(ctx, limit, offset,
		sortFactor, orderFactor, productFilterFromQuery(r, false))
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}

	render.JSON(w, r, productListView{
		Products: productsToView(products),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlIntParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	product, err := s.rep.Products().GetProductById(ctx, id)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	if product.Archived {
		render.Render(w, r, ErrNotFound(fmt.Errorf("product not found")))
		return
	}
	render.JSON(w, r, productToView(product))
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.rep.Products().ListCategories(r.Context())
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, categoriesToView(categories))
}

func (s *Server) listProductReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlIntParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	limit, offset := paging(r)

	reviews, err := s.rep.Review().GetProductReviews(ctx, id, limit, offset)
	if err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.JSON(w, r, reviewsToView(reviews))
}

func (s *Server) postReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ses, _ := sessionFromCtx(ctx)

	id, err := urlIntParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	req := &reviewRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := s.limiter.CheckReviewPost(strconv.Itoa(ses.AccountId)); err != nil {
		render.Render(w, r, ErrTooManyRequests(err))
		return
	}

	insert := &entity.ReviewInsert{
		ProductId: id,
		AccountId: ses.AccountId,
		Rating:    req.Rating,
	}
	if req.Comment != "" {
		insert.Comment.String, insert.Comment.Valid = req.Comment, true
	}

	if err := s.rep.Review().UpsertReview(ctx, insert); err != nil {
		render.Render(w, r, errDomain(err))
		return
	}
	render.NoContent(w, r)
}
