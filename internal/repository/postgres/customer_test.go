package postgres

import (
	"context"
	"testing"
	"time"

	"genset-rental-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		c := &domain.Customer{Name: "Budi", Address: "Jl. Merdeka 1", KTPNumber: "3201010101010001", Phone: "0812"}
		now := time.Now()
		mock.ExpectQuery("INSERT INTO customers").
			WithArgs(c.Name, c.Address, c.KTPNumber, c.Phone).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

		err := repo.Create(ctx, c)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), c.ID)
	})

	t.Run("DuplicateKTP", func(t *testing.T) {
		c := &domain.Customer{Name: "Siti", KTPNumber: "3201010101010001"}
		mock.ExpectQuery("INSERT INTO customers").
			WithArgs(c.Name, c.Address, c.KTPNumber, c.Phone).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "customers_ktp_number_key"})

		err := repo.Create(ctx, c)
		require.ErrorIs(t, err, domain.ErrConflict)
		assert.Contains(t, err.Error(), "KTP number already exists")
	})
}

func TestCustomerRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("ReferencedByPurchaseOrders", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM customers WHERE id = \\$1").
			WithArgs(int64(1)).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "po_customer_id_fkey"})

		err := repo.Delete(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM customers WHERE id = \\$1").
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCustomerRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM customers WHERE").
		WithArgs("%bud%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE (.+) LIMIT \\$2 OFFSET \\$3").
		WithArgs("%bud%", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "ktp_number", "phone", "created_at", "updated_at"}).
			AddRow(1, "Budi", "", "3201", "0812", now, now))

	customers, total, err := repo.List(context.Background(), domain.CustomerFilter{Search: "bud", Page: domain.NewPage(1, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Budi", customers[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
