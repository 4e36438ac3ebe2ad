package postgres

import (
	"context"
	"errors"
	"testing"

	"genset-rental-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSequenceRepository_Next(t *testing.T) {
	ctx := context.Background()

	t.Run("Increments", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewSequenceRepository(db)

		mock.ExpectExec("INSERT INTO document_sequences").WithArgs("PO").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT last_number FROM document_sequences WHERE prefix = \\$1 FOR UPDATE").
			WithArgs("PO").
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow("PO0006"))
		mock.ExpectExec("UPDATE document_sequences SET last_number").
			WithArgs("PO", "PO0007").
			WillReturnResult(sqlmock.NewResult(0, 1))

		got, err := repo.Next(ctx, "PO")
		assert.NoError(t, err)
		assert.Equal(t, "PO0007", got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FirstNumber", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewSequenceRepository(db)

		mock.ExpectExec("INSERT INTO document_sequences").WithArgs("INV").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT last_number FROM document_sequences").
			WithArgs("INV").
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(""))
		mock.ExpectQuery("SELECT invoice_number FROM invoices WHERE invoice_number LIKE \\$1").
			WithArgs("INV").
			WillReturnRows(sqlmock.NewRows([]string{"invoice_number"}))
		mock.ExpectExec("UPDATE document_sequences").
			WithArgs("INV", "INV0001").
			WillReturnResult(sqlmock.NewResult(0, 1))

		got, err := repo.Next(ctx, "INV")
		assert.NoError(t, err)
		assert.Equal(t, "INV0001", got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ContinuesFromExistingNumbers", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewSequenceRepository(db)

		mock.ExpectExec("INSERT INTO document_sequences").WithArgs("PO").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT last_number FROM document_sequences").
			WithArgs("PO").
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(""))
		mock.ExpectQuery("SELECT po_number FROM po WHERE po_number LIKE \\$1 (.+) ORDER BY LENGTH\\(po_number\\) DESC, po_number DESC LIMIT 1").
			WithArgs("PO").
			WillReturnRows(sqlmock.NewRows([]string{"po_number"}).AddRow("PO0412"))
		mock.ExpectExec("UPDATE document_sequences").
			WithArgs("PO", "PO0413").
			WillReturnResult(sqlmock.NewResult(0, 1))

		got, err := repo.Next(ctx, "PO")
		assert.NoError(t, err)
		assert.Equal(t, "PO0413", got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LockFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewSequenceRepository(db)

		mock.ExpectExec("INSERT INTO document_sequences").WithArgs("PO").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT last_number FROM document_sequences").
			WithArgs("PO").
			WillReturnError(errors.New("lock timeout"))

		got, err := repo.Next(ctx, "PO")
		assert.Empty(t, got)
		assert.ErrorIs(t, err, domain.ErrStorage)
	})
}
