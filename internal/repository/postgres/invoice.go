package postgres

import (
	"context"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type invoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceSelect = `SELECT i.id, i.invoice_number, i.po_id, p.po_number, c.name, i.amount, i.payment_type,
       i.payment_date, i.notes, i.created_at
  FROM invoices i
  JOIN po p ON p.id = i.po_id
  JOIN customers c ON c.id = p.customer_id`

func scanInvoice(row interface{ Scan(...any) error }, inv *domain.Invoice) error {
	return row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.POID, &inv.PONumber, &inv.CustomerName, &inv.Amount, &inv.PaymentType,
		&inv.PaymentDate, &inv.Notes, &inv.CreatedAt)
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (invoice_number, po_id, amount, payment_type, payment_date, notes)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, inv.InvoiceNumber, inv.POID, inv.Amount, inv.PaymentType, inv.PaymentDate, inv.Notes).
		Scan(&inv.ID, &inv.CreatedAt)
	return mapError("create invoice", "invoice", inv.InvoiceNumber, err)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	if err := scanInvoice(r.db.QueryRowContext(ctx, invoiceSelect+` WHERE i.id = $1`, id), inv); err != nil {
		return nil, mapError("get invoice", "invoice", id, err)
	}
	return inv, nil
}

func (r *invoiceRepository) ListByPO(ctx context.Context, poID int64) ([]domain.Invoice, error) {
	return r.query(ctx, invoiceSelect+` WHERE i.po_id = $1 ORDER BY i.payment_date, i.id`, poID)
}

func (r *invoiceRepository) SumByPO(ctx context.Context, poID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE po_id = $1`, poID).Scan(&sum)
	if err != nil {
		return decimal.Zero, mapError("sum invoices", "purchase order", poID, err)
	}
	return sum, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, int, error) {
	where := newWhere()
	if filter.Search != "" {
		p := where.arg("%" + filter.Search + "%")
		where.add("(i.invoice_number ILIKE " + p + " OR p.po_number ILIKE " + p + " OR c.name ILIKE " + p + ")")
	}
	if filter.POID > 0 {
		where.add("i.po_id = " + where.arg(filter.POID))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM invoices i JOIN po p ON p.id = i.po_id JOIN customers c ON c.id = p.customer_id` + where.sql()
	if err := r.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count invoices", "invoice", nil, err)
	}

	query := invoiceSelect + where.sql() + ` ORDER BY i.created_at DESC, i.id DESC` + where.page(filter.Page)
	invoices, err := r.query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepository) query(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list invoices", "invoice", nil, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var inv domain.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, mapError("scan invoice", "invoice", nil, err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list invoices", "invoice", nil, err)
	}
	return invoices, nil
}
