package postgres

import (
	"context"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type financeRepository struct {
	db DBTX
}

func NewFinanceRepository(db DBTX) repository.FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) Create(ctx context.Context, e *domain.FinanceEntry) error {
	query := `INSERT INTO finance (transaction_type, amount, description, reference_type, reference_id, transaction_date)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, e.TransactionType, e.Amount, e.Description, e.ReferenceType, e.ReferenceID, e.TransactionDate).
		Scan(&e.ID, &e.CreatedAt)
	return mapError("create finance entry", "finance entry", e.Description, err)
}

func (r *financeRepository) List(ctx context.Context, filter domain.FinanceFilter) ([]domain.FinanceEntry, int, error) {
	where := newWhere()
	if filter.StartDate != nil {
		where.add("transaction_date >= " + where.arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		where.add("transaction_date <= " + where.arg(*filter.EndDate))
	}
	if filter.Type != "" {
		where.add("transaction_type = " + where.arg(filter.Type))
	}
	if filter.Search != "" {
		where.add("description ILIKE " + where.arg("%"+filter.Search+"%"))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM finance`+where.sql(), where.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count finance entries", "finance entry", nil, err)
	}

	query := `SELECT id, transaction_type, amount, description, reference_type, reference_id, transaction_date, created_at
	          FROM finance` + where.sql() + ` ORDER BY transaction_date DESC, id DESC` + where.page(filter.Page)
	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, 0, mapError("list finance entries", "finance entry", nil, err)
	}
	defer rows.Close()

	entries := []domain.FinanceEntry{}
	for rows.Next() {
		var e domain.FinanceEntry
		if err := rows.Scan(&e.ID, &e.TransactionType, &e.Amount, &e.Description, &e.ReferenceType, &e.ReferenceID, &e.TransactionDate, &e.CreatedAt); err != nil {
			return nil, 0, mapError("scan finance entry", "finance entry", nil, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list finance entries", "finance entry", nil, err)
	}
	return entries, total, nil
}

// Totals sums income and expense, limited to period when it is set.
func (r *financeRepository) Totals(ctx context.Context, period domain.DateRange) (domain.FinanceTotals, error) {
	where := newWhere()
	if period.IsSet() {
		where.add("transaction_date BETWEEN " + where.arg(*period.Start) + " AND " + where.arg(*period.End))
	}
	query := `SELECT
	            COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0),
	            COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0)
	          FROM finance` + where.sql()

	var income, expense decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, where.args...).Scan(&income, &expense); err != nil {
		return domain.FinanceTotals{}, mapError("sum finance entries", "finance entry", nil, err)
	}
	return domain.NewFinanceTotals(income, expense), nil
}
