package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/entity"
	gerr "github.com/elarafragrance/elara-backend/internal/errors"
)

type accountStore struct {
	*MYSQLStore
}

// Account returns an object implementing Account interface
func (ms *MYSQLStore) Account() dependency.Account {
	return &accountStore{
		MYSQLStore: ms,
	}
}

func (ms *MYSQLStore) AddAccount(ctx context.Context, account *entity.AccountInsert, pwHash string) (int, error) {
	if !entity.ValidRoleNames[account.Role] {
		return 0, fmt.Errorf("invalid role: %s", account.Role)
	}
	id, err := ExecNamedLastId(ctx, ms.DB(), `
	INSERT INTO account (email, password_hash, first_name, last_name, phone, role, commission_pct) VALUES
		(:email, :passwordHash, :firstName, :lastName, :phone, :role, :commissionPct)`, map[string]any{
		"email":         account.Email,
		"passwordHash":  pwHash,
		"firstName":     account.FirstName,
		"lastName":      account.LastName,
		"phone":         account.Phone,
		"role":          string(account.Role),
		"commissionPct": account.CommissionPct,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add account: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	account, err := QueryNamedOne[entity.Account](ctx, ms.DB(), `
	SELECT * FROM account WHERE email = :email`, map[string]any{
		"email": email,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrAccountNotFound
		}
		return nil, fmt.Errorf("can't get account by email: %w", err)
	}
	return &account, nil
}

func (ms *MYSQLStore) GetAccountById(ctx context.Context, id int) (*entity.Account, error) {
	account, err := QueryNamedOne[entity.Account](ctx, ms.DB(), `
	SELECT * FROM account WHERE id = :id`, map[string]any{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrAccountNotFound
		}
		return nil, fmt.Errorf("can't get account by id: %w", err)
	}
	return &account, nil
}

func (ms *MYSQLStore) ChangePassword(ctx context.Context, email, newHash string) error {
	rows, err := ExecNamedRows(ctx, ms.DB(), `
	UPDATE account SET password_hash = :passwordHash WHERE email = :email`, map[string]any{
		"email":        email,
		"passwordHash": newHash,
	})
	if err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	if rows == 0 {
		return gerr.ErrAccountNotFound
	}
	return nil
}

func (ms *MYSQLStore) ListAccountsByRole(ctx context.Context, role entity.RoleName, limit, offset int) ([]entity.Account, error) {
	if !entity.ValidRoleNames[role] {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	accounts, err := QueryListNamed[entity.Account](ctx, ms.DB(), `
	SELECT * FROM account
	WHERE role = :role
	ORDER BY created_at DESC
	LIMIT :limit OFFSET :offset`, map[string]any{
		"role":   string(role),
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get account list: %w", err)
	}
	return accounts, nil
}

func (ms *MYSQLStore) CountCustomersSince(ctx context.Context, since time.Time) (int, error) {
	count, err := QueryCountNamed(ctx, ms.DB(), `
	SELECT COUNT(*) FROM account
	WHERE role = :role AND created_at >= :since`, map[string]any{
		"role":  string(entity.RoleCustomer),
		"since": since,
	})
	if err != nil {
		return 0, fmt.Errorf("can't count customers since: %w", err)
	}
	return count, nil
}

func (ms *MYSQLStore) DeleteAccountById(ctx context.Context, id int) error {
	rows, err := ExecNamedRows(ctx, ms.DB(), `
	DELETE FROM account WHERE id = :id`, map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if rows == 0 {
		return gerr.ErrAccountNotFound
	}
	return nil
}
