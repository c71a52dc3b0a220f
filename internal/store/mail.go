package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/entity"
)

type mailStore struct {
	*MYSQLStore
}

// Mail returns an object implementing mail interface
func (ms *MYSQLStore) Mail() dependency.Mail {
	return &mailStore{
		MYSQLStore: ms,
	}
}

func (ms *MYSQLStore) AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error) {
	query := `
	INSERT INTO
	send_email_request
		(to_email, subject, html, sent, sent_at)
	VALUES
		(:toEmail, :subject, :html, :sent, :sentAt)
	`
	params := map[string]any{
		"toEmail": ser.To,
		"subject": ser.Subject,
		"html":    ser.Html,
		"sent":    ser.Sent,
	}
	if ser.Sent {
		params["sentAt"] = sql.NullTime{Time: ms.Now(), Valid: true}
	} else {
		params["sentAt"] = sql.NullTime{}
	}

	id, err := ExecNamedLastId(ctx, ms.DB(), query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to add mail: %w", err)
	}

	return id, nil
}

func (ms *MYSQLStore) GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error) {
	var query string

	if withError {
		// Include records that already failed once
		query = `SELECT * FROM send_email_request WHERE sent = false`
	} else {
		query = `SELECT * FROM send_email_request WHERE sent = false AND err_msg IS NULL`
	}

	srs, err := QueryListNamed[entity.SendEmailRequest](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to get unsent mail: %w", err)
	}

	return srs, nil
}

func (ms *MYSQLStore) UpdateSent(ctx context.Context, id int) error {
	query := `UPDATE send_email_request SET sent = true, sent_at = :sentAt WHERE id = :id`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"id":     id,
		"sentAt": sql.NullTime{Time: ms.Now(), Valid: true},
	})
	if err != nil {
		return fmt.Errorf("failed to update sent: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) AddError(ctx context.Context, id int, errMsg string) error {
	query := `UPDATE send_email_request SET err_msg = :err WHERE id = :id`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"id":  id,
		"err": errMsg,
	})
	if err != nil {
		return fmt.Errorf("failed to add mail error: %w", err)
	}
	return nil
}
