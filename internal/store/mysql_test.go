package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to the database named in ELARA_TEST_DSN. Tests that need
// a live database are skipped when the variable is unset.
func newTestDB(t *testing.T) *MYSQLStore {
	dsn := os.Getenv("ELARA_TEST_DSN")
	if dsn == "" {
		t.Skip("ELARA_TEST_DSN not set")
	}

	db, err := NewForTest(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = db.db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0")
	require.NoError(t, err)
	for _, table := range []string{
		"send_email_request",
		"review",
		"delivery_otp",
		"order_item",
		"customer_order",
		"promo_code",
		"product",
		"category",
		"account",
	} {
		_, err = db.db.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
	_, err = db.db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1")
	require.NoError(t, err)

	return db
}

func TestIsErrorRepeat(t *testing.T) {
	ms := &MYSQLStore{}

	assert.True(t, ms.IsErrorRepeat(&mysql.MySQLError{Number: 1213}))
	assert.True(t, ms.IsErrorRepeat(&mysql.MySQLError{Number: 1205}))
	assert.True(t, ms.IsErrorRepeat(fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 1213})))
	assert.False(t, ms.IsErrorRepeat(&mysql.MySQLError{Number: 1062}))
	assert.False(t, ms.IsErrorRepeat(fmt.Errorf("plain error")))
	assert.False(t, ms.IsErrorRepeat(nil))
}

func TestIsErrUniqueViolation(t *testing.T) {
	ms := &MYSQLStore{}

	assert.True(t, ms.IsErrUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.True(t, ms.IsErrUniqueViolation(fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 1062})))
	assert.False(t, ms.IsErrUniqueViolation(&mysql.MySQLError{Number: 1213}))
	assert.False(t, ms.IsErrUniqueViolation(fmt.Errorf("plain error")))
	assert.False(t, ms.IsErrUniqueViolation(nil))
}

func TestBulkInsertEmpty(t *testing.T) {
	// No rows is a no-op, not an error.
	assert.NoError(t, BulkInsert(context.Background(), nil, "order_item", nil))
}
