package mail

import (
	"context"
	"fmt"

	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/dto"
)

const (
	OrderCancelled templateName = "order_cancelled.gohtml"
	OrderConfirmed templateName = "order_confirmed.gohtml"
	OrderShipped   templateName = "order_shipped.gohtml"
	OrderDelivered templateName = "order_delivered.gohtml"
	DeliveryOTP    templateName = "delivery_otp.gohtml"
)

var templateSubjects = map[templateName]string{
	OrderCancelled: "Your ELARA order has been cancelled",
	OrderConfirmed: "Your ELARA order has been confirmed",
	OrderShipped:   "Your ELARA order has been shipped",
	OrderDelivered: "Your ELARA order has been delivered",
	DeliveryOTP:    "Your ELARA delivery code",
}

// SendOrderConfirmation sends an order confirmation email.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, rep dependency.Repository, to string, orderDetails *dto.OrderConfirmed) error {
	if orderDetails.OrderUUID == "" || orderDetails.FullName == "" {
		return fmt.Errorf("incomplete order details: %+v", orderDetails)
	}
	ser, err := m.render(to, OrderConfirmed, orderDetails)
	if err != nil {
		return err
	}
	return m.sendWithInsert(ctx, rep, ser)
}

// SendOrderCancellation sends an order cancellation email.
func (m *Mailer) SendOrderCancellation(ctx context.Context, rep dependency.Repository, to string, orderDetails *dto.OrderCancelled) error {
	if orderDetails.OrderUUID == "" {
		return fmt.Errorf("incomplete order details: %+v", orderDetails)
	}
	ser, err := m.render(to, OrderCancelled, orderDetails)
	if err != nil {
		return err
	}
	return m.sendWithInsert(ctx, rep, ser)
}

// SendOrderShipped sends an order shipped email.
func (m *Mailer) SendOrderShipped(ctx context.Context, rep dependency.Repository, to string, orderDetails *dto.OrderShipped) error {
	ser, err := m.render(to, OrderShipped, orderDetails)
	if err != nil {
		return err
	}
	return m.sendWithInsert(ctx, rep, ser)
}

// SendOrderDelivered sends the delivery confirmation email.
func (m *Mailer) SendOrderDelivered(ctx context.Context, rep dependency.Repository, to string, orderDetails *dto.OrderDelivered) error {
	ser, err := m.render(to, OrderDelivered, orderDetails)
	if err != nil {
		return err
	}
	return m.sendWithInsert(ctx, rep, ser)
}

// SendDeliveryOTP sends the 4-digit delivery verification code to the
// customer when the order goes out for delivery.
func (m *Mailer) SendDeliveryOTP(ctx context.Context, rep dependency.Repository, to string, otpDetails *dto.DeliveryOTP) error {
	if otpDetails.Code == "" {
		return fmt.Errorf("incomplete otp details: %+v", otpDetails)
	}
	ser, err := m.render(to, DeliveryOTP, otpDetails)
	if err != nil {
		return err
	}
	return m.sendWithInsert(ctx, rep, ser)
}
