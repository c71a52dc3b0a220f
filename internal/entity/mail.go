package entity

import (
	"database/sql"
	"time"
)

// SendEmailRequest represents the mail outbox table. Rows are inserted in the
// same flow that triggers the email and drained by the mail worker.
type SendEmailRequest struct {
	Id        int            `db:"id"`
	To        string         `db:"to_email"`
	Subject   string         `db:"subject"`
	Html      string         `db:"html"`
	Sent      bool           `db:"sent"`
	SentAt    sql.NullTime   `db:"sent_at"`
	ErrMsg    sql.NullString `db:"err_msg"`
	CreatedAt time.Time      `db:"created_at"`
}
