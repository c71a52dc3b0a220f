package http

import (
	"time"

	"github.com/elarafragrance/elara-backend/internal/entity"
)

// View models keep the JSON surface decoupled from db-tagged entities.

type productView struct {
	Id          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	SalePrice   *float64  `json:"salePrice,omitempty"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Gender      string    `json:"gender"`
	Archived    bool      `json:"archived"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Blurhash    string    `json:"blurhash,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func productToView(p *entity.Product) productView {
	pv := productView{
		Id:        p.Id,
		Name:      p.Name,
		Price:     p.PriceDecimal().InexactFloat64(),
		Stock:     p.Stock,
		Category:  p.DisplayCategory(),
		Gender:    p.Gender.String(),
		Archived:  p.Archived,
		CreatedAt: p.CreatedAt,
	}
	if p.Description.Valid {
		pv.Description = p.Description.String
	}
	if p.SalePrice.Valid {
		sp := p.SalePrice.Decimal.Round(2).InexactFloat64()
		pv.SalePrice = &sp
	}
	if p.ImageURL.Valid {
		pv.ImageURL = p.ImageURL.String
	}
	if p.Blurhash.Valid {
		pv.Blurhash = p.Blurhash.String
	}
	return pv
}

func productsToView(products []entity.Product) []productView {
	out := make([]productView, 0, len(products))
	for i := range products {
		out = append(out, productToView(&products[i]))
	}
	return out
}

type productListView struct {
	Products []productView `json:"products"`
	Total    int           `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

type categoryView struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

func categoriesToView(categories []entity.Category) []categoryView {
	out := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryView{Id: c.Id, Name: c.Name})
	}
	return out
}

type orderItemView struct {
	ProductId   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
}

type orderView struct {
	Id            int             `json:"id"`
	UUID          string          `json:"uuid"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalPrice    float64         `json:"totalPrice"`
	Address       string          `json:"address"`
	Placed        time.Time       `json:"placed"`
	Modified      time.Time       `json:"modified"`
	Items         []orderItemView `json:"items,omitempty"`
}

func orderToView(o *entity.Order) orderView {
	return orderView{
		Id:            o.Id,
		UUID:          o.UUID,
		Status:        o.Status.String(),
		PaymentMethod: string(o.PaymentMethod),
		TotalPrice:    o.TotalPriceDecimal().InexactFloat64(),
		Address:       o.Address,
		Placed:        o.Placed,
		Modified:      o.Modified,
	}
}

func orderFullToView(of *entity.OrderFull) orderView {
	ov := orderToView(&of.Order)
	ov.Items = make([]orderItemView, 0, len(of.Items))
	for i := range of.Items {
		it := &of.Items[i]
		ov.Items = append(ov.Items, orderItemView{
			ProductId:   it.ProductId,
			ProductName: it.ProductName,
			Price:       it.ProductPriceDecimal().InexactFloat64(),
			Quantity:    it.Quantity,
			Category:    it.DisplayCategory(),
		})
	}
	return ov
}

func ordersToView(orders []entity.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for i := range orders {
		out = append(out, orderToView(&orders[i]))
	}
	return out
}

type reviewView struct {
	Id           int       `json:"id"`
	ProductId    int       `json:"productId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func reviewsToView(reviews []entity.Review) []reviewView {
	out := make([]reviewView, 0, len(reviews))
	for _, rv := range reviews {
		v := reviewView{
			Id:        rv.Id,
			ProductId: rv.ProductId,
			Rating:    rv.Rating,
			CreatedAt: rv.CreatedAt,
		}
		if rv.Comment.Valid {
			v.Comment = rv.Comment.String
		}
		if rv.CustomerName.Valid {
			v.CustomerName = rv.CustomerName.String
		}
		out = append(out, v)
	}
	return out
}

type accountView struct {
	Id            int      `json:"id"`
	Email         string   `json:"email"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Role          string   `json:"role"`
	CommissionPct *float64 `json:"commissionPct,omitempty"`
}

func accountToView(a *entity.Account) accountView {
	av := accountView{
		Id:        a.Id,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      string(a.Role),
	}
	if a.Phone.Valid {
		av.Phone = a.Phone.String
	}
	if a.CommissionPct.Valid {
		pct := a.CommissionPct.Decimal.Round(2).InexactFloat64()
		av.CommissionPct = &pct
	}
	return av
}

func accountsToView(accounts []entity.Account) []accountView {
	out := make([]accountView, 0, len(accounts))
	for i := range accounts {
		out = append(out, accountToView(&accounts[i]))
	}
	return out
}

type promoView struct {
	Id         int       `json:"id"`
	Code       string    `json:"code"`
	Discount   float64   `json:"discount"`
	Start      time.Time `json:"start"`
	Expiration time.Time `json:"expiration"`
	Allowed    bool      `json:"allowed"`
}

func promosToView(promos []entity.PromoCode) []promoView {
	out := make([]promoView, 0, len(promos))
	for i := range promos {
		pc := &promos[i]
		out = append(out, promoView{
			Id:         pc.Id,
			Code:       pc.Code,
			Discount:   pc.DiscountDecimal().InexactFloat64(),
			Start:      pc.Start,
			Expiration: pc.Expiration,
			Allowed:    pc.Allowed,
		})
	}
	return out
}

type checkoutView struct {
	Order orderView `json:"order"`
	// ClientSecret is set only for ONLINE payments.
	ClientSecret string `json:"clientSecret,omitempty"`
}

type sessionView struct {
	Token   string      `json:"token"`
	Account accountView `json:"account"`
}
