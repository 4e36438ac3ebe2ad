package postgres

import (
	"context"
	"testing"
	"time"

	"genset-rental-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceRepository_CreateInvoiceEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFinanceRepository(db)
	paid := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	entry := domain.NewInvoiceIncomeEntry(&domain.Invoice{ID: 4, InvoiceNumber: "INV0001", Amount: decimal.NewFromInt(250000), PaymentDate: paid})

	mock.ExpectQuery("INSERT INTO finance").
		WithArgs(domain.FinanceTypeIncome, entry.Amount, "Payment from invoice INV0001", "invoice", int64(4), paid).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(9, time.Now()))

	require.NoError(t, repo.Create(context.Background(), entry))
	assert.Equal(t, int64(9), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceRepository_Totals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFinanceRepository(db)
	ctx := context.Background()

	t.Run("AllTime", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM finance$").
			WillReturnRows(sqlmock.NewRows([]string{"income", "expense"}).AddRow("1000000", "250000"))

		totals, err := repo.Totals(ctx, domain.DateRange{})
		require.NoError(t, err)
		assert.Equal(t, "750000", totals.Balance.String())
	})

	t.Run("Period", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM finance WHERE transaction_date BETWEEN \\$1 AND \\$2").
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows([]string{"income", "expense"}).AddRow("0", "100000"))

		totals, err := repo.Totals(ctx, domain.DateRange{Start: &start, End: &end})
		require.NoError(t, err)
		assert.Equal(t, "-100000", totals.Balance.String())
	})
}
