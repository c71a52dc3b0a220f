package http

import (
	"fmt"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/shopspring/decimal"
)

type signupRequest struct {
	Email     string `json:"email" valid:"required,email"`
	FirstName string `json:"firstName" valid:"required"`
	LastName  string `json:"lastName" valid:"-"`
	Phone     string `json:"phone" valid:"-"`
	Password  string `json:"password" valid:"required"`
}

func (sr *signupRequest) Bind(_ *http.Request) error {
	if _, err := govalidator.ValidateStruct(sr); err != nil {
		return err
	}
	if len(sr.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email" valid:"required,email"`
	Password string `json:"password" valid:"required"`
}

func (lr *loginRequest) Bind(_ *http.Request) error {
	_, err := govalidator.ValidateStruct(lr)
	return err
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" valid:"required"`
	NewPassword     string `json:"newPassword" valid:"required"`
}

func (cpr *changePasswordRequest) Bind(_ *http.Request) error {
	if _, err := govalidator.ValidateStruct(cpr); err != nil {
		return err
	}
	if len(cpr.NewPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

type checkoutItem struct {
	ProductId int `json:"productId" valid:"required"`
	Quantity  int `json:"quantity" valid:"required"`
}

type checkoutRequest struct {
	Items         []checkoutItem `json:"items" valid:"required"`
	PaymentMethod string         `json:"paymentMethod" valid:"required"`
	Address       string         `json:"address" valid:"required"`
	PromoCode     string         `json:"promoCode" valid:"-"`
}

func (cr *checkoutRequest) Bind(_ *http.Request) error {
	if _, err := govalidator.ValidateStruct(cr); err != nil {
		return err
	}
	if len(cr.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	if !entity.ValidPaymentMethodNames[entity.PaymentMethodName(cr.PaymentMethod)] {
		return fmt.Errorf("invalid payment method: %q", cr.PaymentMethod)
	}
	return nil
}

func (cr *checkoutRequest) toOrderNew() *entity.OrderNew {
	items := make([]entity.OrderItemInsert, 0, len(cr.Items))
	for _, it := range cr.Items {
		items = append(items, entity.OrderItemInsert{
			ProductId: it.ProductId,
			Quantity:  it.Quantity,
		})
	}
	return &entity.OrderNew{
		Items:         items,
		PaymentMethod: entity.PaymentMethodName(cr.PaymentMethod),
		Address:       cr.Address,
		PromoCode:     cr.PromoCode,
	}
}

type reviewRequest struct {
	Rating  int    `json:"rating" valid:"required,range(1|5)"`
	Comment string `json:"comment" valid:"-"`
}

func (rr *reviewRequest) Bind(_ *http.Request) error {
	if _, err := govalidator.ValidateStruct(rr); err != nil {
		return err
	}
	if !entity.IsValidRating(rr.Rating) {
		return fmt.Errorf("rating must be between %d and %d", entity.MinRating, entity.MaxRating)
	}
	return nil
}

type productRequest struct {
	Name        string  `json:"name" valid:"required"`
	Description string  `json:"description" valid:"-"`
	Price       float64 `json:"price" valid:"required"`
	SalePrice   float64 `json:"salePrice" valid:"-"`
	Stock       int     `json:"stock" valid:"-"`
	CategoryId  int     `json:"categoryId" valid:"-"`
	Gender      string  `json:"gender" valid:"-"`
	ImageURL    string  `json:"imageUrl" valid:"-"`
	Blurhash    string  `json:"blurhash" valid:"-"`
}

func (pr *productRequest) Bind(_ *http.Request) error {
	if _, err := govalidator.ValidateStruct(pr); err != nil {
		return err
	}
	if pr.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if pr.SalePrice < 0 || pr.Stock < 0 {
		return fmt.Errorf("sale price and stock can't be negative")
	}
	if pr.Gender == "" {
		pr.Gender = entity.Unisex.String()
	}
	if !entity.IsValidGender(entity.GenderEnum(pr.Gender)) {
		return fmt.Errorf("invalid gender tag: %q", pr.Gender)
	}
	return nil
}

func (pr *productRequest) toProductInsert() *entity.ProductInsert {
	prd := &entity.ProductInsert{
		ProductBody: entity.ProductBody{
			Name:   pr.Name,
			Price:  decimal.NewFromFloat(pr.Price),
			Stock:  pr.Stock,
			Gender: entity.GenderEnum(pr.Gender),
		},
	}
	if pr.Description != "" {
		prd.Description.String, prd.Description.Valid = pr.Description, true
	}
	if pr.SalePrice > 0 {
		prd.SalePrice.Decimal = decimal.NewFromFloat(pr.SalePrice)
		prd.SalePrice.Valid = true
	}
	if pr.CategoryId > 0 {
		prd.CategoryId.Int32, prd.CategoryId.Valid = int32(pr.CategoryId), true
	}
	if pr.ImageURL != "" {
		prd.ImageURL.String, prd.ImageURL.Valid = pr.ImageURL, true
	}
	if pr.Blurhash != "" {
		prd.Blurhash.String, prd.Blurhash.Valid = pr.Blurhash, true
	}
	return prd
}

type categoryRequest struct {
	Name string `json:"name" valid:"required"`
}

func (cr *categoryRequest) Bind(_ *http.Request) error {
	_, err := govalidator.ValidateStruct(cr)
	return err
}

type promoRequest struct {
	Code       string  `json:"code" valid:"required"`
	Discount   float64 `json:"discount" valid:"required"`
	Start      string  `json:"start" valid:"-"`
	Expiration string  `json:"expiration" valid:"required"`
	Allowed    bool    `json:"allowed" valid:"-"`
}

func (pr *promoRequest) Bind(_ *http.Request) error {
	if _, err := govalidator.ValidateStruct(pr); err != nil {
		return err
	}
	if pr.Discount <= 0 || pr.Discount > 100 {
		return fmt.Errorf("discount must be a percentage between 0 and 100")
	}
	return nil
}

type imageUploadRequest struct {
	RawB64Image string `json:"rawB64Image" valid:"required"`
	ImageName   string `json:"imageName" valid:"required"`
}

func (ir *imageUploadRequest) Bind(_ *http.Request) error {
	_, err := govalidator.ValidateStruct(ir)
	return err
}

type statusChangeRequest struct {
	Status string `json:"status" valid:"required"`
}

func (scr *statusChangeRequest) Bind(_ *http.Request) error {
	if _, err := govalidator.ValidateStruct(scr); err != nil {
		return err
	}
	if !entity.ValidOrderStatusNames[entity.OrderStatusName(scr.Status)] {
		return fmt.Errorf("invalid order status: %q", scr.Status)
	}
	return nil
}

type assignAgentRequest struct {
	AgentId int `json:"agentId" valid:"required"`
}

func (aar *assignAgentRequest) Bind(_ *http.Request) error {
	_, err := govalidator.ValidateStruct(aar)
	return err
}

type verifyOTPRequest struct {
	Code string `json:"code" valid:"required"`
}

func (vor *verifyOTPRequest) Bind(_ *http.Request) error {
	_, err := govalidator.ValidateStruct(vor)
	return err
}

type addAgentRequest struct {
	signupRequest
	CommissionPct float64 `json:"commissionPct" valid:"-"`
}

func (aar *addAgentRequest) Bind(r *http.Request) error {
	if err := aar.signupRequest.Bind(r); err != nil {
		return err
	}
	if aar.CommissionPct < 0 || aar.CommissionPct > 100 {
		return fmt.Errorf("commission must be a percentage between 0 and 100")
	}
	return nil
}
