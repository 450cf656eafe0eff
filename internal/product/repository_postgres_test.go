package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeductStockGuarded(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE products SET stock = stock - \$2`).
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	ok, err := repo.DeductStock(1, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeductStockInsufficient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE products SET stock = stock - \$2`).
		WithArgs(1, 100).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	ok, err := repo.DeductStock(1, 100)
	require.NoError(t, err)
	assert.False(t, ok, "the guard must refuse to cross the zero floor")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE products SET stock = stock \+ \$2`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.AddStock(1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
