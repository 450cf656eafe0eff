package coupon

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementUsageGuarded(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE coupons SET used_count = used_count \+ 1`).
		WithArgs("SAVE20").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	ok, err := repo.IncrementUsage("save20")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsageExhausted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE coupons SET used_count = used_count \+ 1`).
		WithArgs("SAVE20").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	ok, err := repo.IncrementUsage("SAVE20")
	require.NoError(t, err)
	assert.False(t, ok, "an exhausted code must not match the guarded update")
	assert.NoError(t, mock.ExpectationsWereMet())
}
