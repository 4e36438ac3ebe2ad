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

func TestInvoiceRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewInvoiceRepository(db)
	paid := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	inv := &domain.Invoice{
		InvoiceNumber: "INV0001",
		POID:          11,
		Amount:        decimal.NewFromInt(250000),
		PaymentType:   domain.PaymentTypeDP,
		PaymentDate:   paid,
	}

	mock.ExpectQuery("INSERT INTO invoices").
		WithArgs("INV0001", int64(11), inv.Amount, domain.PaymentTypeDP, paid, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(4, time.Now()))

	require.NoError(t, repo.Create(context.Background(), inv))
	assert.Equal(t, int64(4), inv.ID)
}

func TestInvoiceRepository_SumByPO(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	t.Run("WithPayments", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM invoices WHERE po_id = \\$1").
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("550000.50"))

		sum, err := repo.SumByPO(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, "550000.5", sum.String())
	})

	t.Run("NoPayments", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs(int64(12)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("0"))

		sum, err := repo.SumByPO(ctx, 12)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}

func TestInvoiceRepository_ListByPO(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewInvoiceRepository(db)
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM invoices i (.+) WHERE i.po_id = \\$1").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_number", "po_id", "po_number", "name", "amount", "payment_type", "payment_date", "notes", "created_at"}).
			AddRow(1, "INV0001", 11, "PO0007", "Budi", "250000", "dp", now, "", now).
			AddRow(2, "INV0002", 11, "PO0007", "Budi", "500000", "full", now, "", now))

	invoices, err := repo.ListByPO(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, domain.PaymentTypeFull, invoices[1].PaymentType)
	assert.Equal(t, "PO0007", invoices[0].PONumber)
}
