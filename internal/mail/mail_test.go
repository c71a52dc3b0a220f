package mail

import (
	"context"
	"testing"
	"time"

	"github.com/elarafragrance/elara-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T) *Mailer {
	m, err := New(&Config{
		APIKey:         "test-key",
		FromEmail:      "orders@elara.test",
		FromName:       "ELARA",
		WorkerInterval: time.Minute,
	}, nil)
	require.NoError(t, err)
	return m
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(&Config{FromEmail: "orders@elara.test", FromName: "ELARA"}, nil)
	assert.Error(t, err)

	_, err = New(&Config{APIKey: "k", FromName: "ELARA"}, nil)
	assert.Error(t, err)
}

func TestRenderTemplates(t *testing.T) {
	m := newTestMailer(t)

	t.Run("OrderConfirmed", func(t *testing.T) {
		ser, err := m.render("customer@test.com", OrderConfirmed, &dto.OrderConfirmed{
			OrderUUID:  "abc-123",
			FullName:   "Ada Lovelace",
			TotalPrice: "160.00",
			ItemsCount: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, "customer@test.com", ser.To)
		assert.Equal(t, "Your ELARA order has been confirmed", ser.Subject)
		assert.Contains(t, ser.Html, "abc-123")
		assert.Contains(t, ser.Html, "Ada Lovelace")
		assert.Contains(t, ser.Html, "160.00")
	})

	t.Run("DeliveryOTP", func(t *testing.T) {
		ser, err := m.render("customer@test.com", DeliveryOTP, &dto.DeliveryOTP{
			OrderUUID: "abc-123",
			FullName:  "Ada Lovelace",
			Code:      "0042",
			ExpiresIn: "30 minutes",
		})
		require.NoError(t, err)
		assert.Contains(t, ser.Html, "0042")
		assert.Contains(t, ser.Html, "30 minutes")
	})

	t.Run("UnknownTemplate", func(t *testing.T) {
		_, err := m.render("customer@test.com", templateName("nope.gohtml"), nil)
		assert.Error(t, err)
	})
}

func TestSendValidation(t *testing.T) {
	m := newTestMailer(t)

	// Missing order reference is rejected before any outbox write.
	err := m.SendOrderConfirmation(context.Background(), nil, "customer@test.com", &dto.OrderConfirmed{
		FullName: "Ada Lovelace",
	})
	assert.Error(t, err)

	err = m.SendDeliveryOTP(context.Background(), nil, "customer@test.com", &dto.DeliveryOTP{
		OrderUUID: "abc-123",
	})
	assert.Error(t, err)
}
