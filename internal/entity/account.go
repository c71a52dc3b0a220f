package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// RoleName is the account role.
type RoleName string

const (
	RoleCustomer RoleName = "customer"
	RoleAdmin    RoleName = "admin"
	RoleAgent    RoleName = "agent"
)

var ValidRoleNames = map[RoleName]bool{
	RoleCustomer: true,
	RoleAdmin:    true,
	RoleAgent:    true,
}

// Account represents the account table. Delivery agents carry a commission
// percentage applied to orders they deliver.
type Account struct {
	Id           int       `db:"id"`
	CreatedAt    time.Time `db:"created_at"`
	PasswordHash string    `db:"password_hash"`
	AccountInsert
}

type AccountInsert struct {
	Email         string              `db:"email" valid:"required,email"`
	FirstName     string              `db:"first_name" valid:"required"`
	LastName      string              `db:"last_name" valid:"-"`
	Phone         sql.NullString      `db:"phone" valid:"-"`
	Role          RoleName            `db:"role"`
	CommissionPct decimal.NullDecimal `db:"commission_pct"`
}

func (a *Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// CommissionFor computes the agent commission for an order total. Zero when
// the account has no commission percentage configured.
func (a *Account) CommissionFor(total decimal.Decimal) decimal.Decimal {
	if !a.CommissionPct.Valid {
		return decimal.Zero
	}
	return total.Mul(a.CommissionPct.Decimal).Div(decimal.NewFromInt(100)).Round(2)
}
