package gerr

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrReviewNotFound    = errors.New("review not found")
	ErrPromoNotValid     = errors.New("promo code is not valid")
	ErrBadStatusChange   = errors.New("status transition not allowed")

	ErrOTPNotFound    = errors.New("delivery otp not found")
	ErrOTPExpired     = errors.New("delivery otp expired")
	ErrOTPMismatch    = errors.New("delivery otp does not match")
	ErrOTPMaxAttempts = errors.New("delivery otp attempts exhausted")

	ErrMailApiLimitReached = errors.New("mail api limit reached")
)
