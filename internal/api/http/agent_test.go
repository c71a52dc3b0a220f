package http

import (
	"testing"

	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommissionFor(t *testing.T) {
	total := decimal.NewFromInt(200)

	t.Run("AgentPercentage", func(t *testing.T) {
		agent := &entity.Account{AccountInsert: entity.AccountInsert{
			Role:          entity.RoleAgent,
			CommissionPct: decimal.NewNullDecimal(decimal.NewFromInt(5)),
		}}
		got := commissionFor(agent, total, 3)
		assert.True(t, got.Equal(decimal.NewFromInt(10)), got.String())
	})

	t.Run("FallsBackToServiceDefault", func(t *testing.T) {
		agent := &entity.Account{AccountInsert: entity.AccountInsert{
			Role: entity.RoleAgent,
		}}
		got := commissionFor(agent, total, 3)
		assert.True(t, got.Equal(decimal.NewFromInt(6)), got.String())
	})

	t.Run("NoDefaultConfigured", func(t *testing.T) {
		agent := &entity.Account{AccountInsert: entity.AccountInsert{
			Role: entity.RoleAgent,
		}}
		got := commissionFor(agent, total, 0)
		assert.True(t, got.IsZero(), got.String())
	})

	t.Run("ZeroAgentPercentageWinsOverDefault", func(t *testing.T) {
		agent := &entity.Account{AccountInsert: entity.AccountInsert{
			Role:          entity.RoleAgent,
			CommissionPct: decimal.NewNullDecimal(decimal.Zero),
		}}
		got := commissionFor(agent, total, 3)
		assert.True(t, got.IsZero(), got.String())
	})
}
