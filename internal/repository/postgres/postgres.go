package postgres

import (
	"context"
	"database/sql"
	"time"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(q DBTX) repository.Repositories {
	return repository.Repositories{
		Users:          NewUserRepository(q),
		Customers:      NewCustomerRepository(q),
		Items:          NewItemRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
		Invoices:       NewInvoiceRepository(q),
		Finance:        NewFinanceRepository(q),
		Sequences:      NewSequenceRepository(q),
		Products:       NewProductRepository(q),
		Settings:       NewSiteSettingRepository(q),
		Contacts:       NewContactRepository(q),
	}
}

// WithinTx implements repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) (err error) {
	started := time.Now()
	defer func() { logger.Transaction(ctx, started, err) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("begin transaction", err)
	}
	defer tx.Rollback()

	if err = fn(newRepositories(tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return domain.NewStorageError("commit transaction", err)
	}
	return nil
}

// Ping checks database reachability for the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
