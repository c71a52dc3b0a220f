package dto

// OrderConfirmed carries template data for the order confirmation email.
type OrderConfirmed struct {
	OrderUUID  string
	FullName   string
	TotalPrice string
	ItemsCount int
}

// OrderCancelled carries template data for the order cancellation email.
type OrderCancelled struct {
	OrderUUID string
	FullName  string
}

// OrderShipped carries template data for the shipment email.
type OrderShipped struct {
	OrderUUID string
	FullName  string
}

// DeliveryOTP carries template data for the delivery verification email.
type DeliveryOTP struct {
	OrderUUID string
	FullName  string
	Code      string
	ExpiresIn string
}

// OrderDelivered carries template data for the delivery confirmation email.
type OrderDelivered struct {
	OrderUUID string
	FullName  string
}
