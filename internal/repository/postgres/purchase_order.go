package postgres

import (
	"context"
	"time"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"

	"github.com/lib/pq"
)

type purchaseOrderRepository struct {
	db DBTX
}

func NewPurchaseOrderRepository(db DBTX) repository.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

const poSelect = `SELECT p.id, p.po_number, p.customer_id, c.name, c.phone, c.address, c.ktp_number,
       p.rental_start, p.rental_end, p.total_cost, p.dp_amount, p.signature_customer, p.signature_admin,
       p.notes, p.status, p.created_at, p.updated_at
  FROM po p JOIN customers c ON c.id = p.customer_id`

func scanPO(row interface{ Scan(...any) error }, po *domain.PurchaseOrder) error {
	return row.Scan(&po.ID, &po.PONumber, &po.CustomerID, &po.CustomerName, &po.CustomerPhone, &po.CustomerAddress, &po.CustomerKTP,
		&po.RentalStart, &po.RentalEnd, &po.TotalCost, &po.DPAmount, &po.SignatureCustomer, &po.SignatureAdmin,
		&po.Notes, &po.Status, &po.CreatedAt, &po.UpdatedAt)
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	logger.DatabaseCall(ctx, "purchaseOrderRepository.Create", "poNumber", po.PONumber, "lines", len(po.Items))

	query := `INSERT INTO po (po_number, customer_id, rental_start, rental_end, total_cost, dp_amount,
	                          signature_customer, signature_admin, notes, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		po.PONumber, po.CustomerID, po.RentalStart, po.RentalEnd, po.TotalCost, po.DPAmount,
		po.SignatureCustomer, po.SignatureAdmin, po.Notes, po.Status,
	).Scan(&po.ID, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		return mapError("create purchase order", "purchase order", po.PONumber, err)
	}

	lineQuery := `INSERT INTO po_items (po_id, item_id, quantity, daily_rate, subtotal)
	              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for i := range po.Items {
		line := &po.Items[i]
		line.POID = po.ID
		err := r.db.QueryRowContext(ctx, lineQuery, po.ID, line.ItemID, line.Quantity, line.DailyRate, line.Subtotal).Scan(&line.ID)
		if err != nil {
			return mapError("create purchase order line", "item", line.ItemID, err)
		}
	}

	logger.DatabaseResult(ctx, "purchaseOrderRepository.Create", int64(len(po.Items)+1), nil, "poID", po.ID)
	return nil
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	po := &domain.PurchaseOrder{}
	if err := scanPO(r.db.QueryRowContext(ctx, poSelect+` WHERE p.id = $1`, id), po); err != nil {
		return nil, mapError("get purchase order", "purchase order", id, err)
	}
	return po, nil
}

func (r *purchaseOrderRepository) GetForUpdate(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	po := &domain.PurchaseOrder{}
	if err := scanPO(r.db.QueryRowContext(ctx, poSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id), po); err != nil {
		return nil, mapError("lock purchase order", "purchase order", id, err)
	}
	return po, nil
}

func (r *purchaseOrderRepository) ListItems(ctx context.Context, poID int64) ([]domain.POLineItem, error) {
	query := `SELECT pi.id, pi.po_id, pi.item_id, i.name, i.brand, i.capacity, i.status, pi.quantity, pi.daily_rate, pi.subtotal
	          FROM po_items pi JOIN items i ON i.id = pi.item_id
	          WHERE pi.po_id = $1 ORDER BY pi.id`
	rows, err := r.db.QueryContext(ctx, query, poID)
	if err != nil {
		return nil, mapError("list purchase order lines", "purchase order", poID, err)
	}
	defer rows.Close()

	lines := []domain.POLineItem{}
	for rows.Next() {
		var l domain.POLineItem
		if err := rows.Scan(&l.ID, &l.POID, &l.ItemID, &l.ItemName, &l.Brand, &l.Capacity, &l.ItemStatus, &l.Quantity, &l.DailyRate, &l.Subtotal); err != nil {
			return nil, mapError("scan purchase order line", "purchase order", poID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list purchase order lines", "purchase order", poID, err)
	}
	return lines, nil
}

func (r *purchaseOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.POStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE po SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return mapError("update purchase order status", "purchase order", id, err)
	}
	return requireAffected(res, "purchase order", id)
}

func (r *purchaseOrderRepository) List(ctx context.Context, filter domain.POFilter) ([]domain.PurchaseOrder, int, error) {
	where := newWhere()
	if filter.Search != "" {
		p := where.arg("%" + filter.Search + "%")
		where.add("(p.po_number ILIKE " + p + " OR c.name ILIKE " + p + " OR c.phone ILIKE " + p + ")")
	}
	if filter.Status != "" {
		where.add("p.status = " + where.arg(filter.Status))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM po p JOIN customers c ON c.id = p.customer_id` + where.sql()
	if err := r.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count purchase orders", "purchase order", nil, err)
	}

	query := poSelect + where.sql() + ` ORDER BY p.created_at DESC, p.id DESC` + where.page(filter.Page)
	orders, err := r.query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountByStatus counts purchase orders in any of statuses, or all of them
// when statuses is empty, optionally restricted by creation date.
func (r *purchaseOrderRepository) CountByStatus(ctx context.Context, statuses []domain.POStatus, createdIn domain.DateRange) (int, error) {
	where := newWhere()
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		where.add("status = ANY(" + where.arg(pq.Array(values)) + ")")
	}
	if createdIn.IsSet() {
		where.add("created_at::date BETWEEN " + where.arg(*createdIn.Start) + " AND " + where.arg(*createdIn.End))
	}

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM po`+where.sql(), where.args...).Scan(&n); err != nil {
		return 0, mapError("count purchase orders", "purchase order", nil, err)
	}
	return n, nil
}

func (r *purchaseOrderRepository) ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]domain.PurchaseOrder, error) {
	query := poSelect + ` WHERE p.status = 'active' AND p.rental_end BETWEEN $1 AND $2 ORDER BY p.rental_end, p.id`
	return r.query(ctx, query, from, to)
}

func (r *purchaseOrderRepository) query(ctx context.Context, query string, args ...any) ([]domain.PurchaseOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list purchase orders", "purchase order", nil, err)
	}
	defer rows.Close()

	orders := []domain.PurchaseOrder{}
	for rows.Next() {
		var po domain.PurchaseOrder
		if err := scanPO(rows, &po); err != nil {
			return nil, mapError("scan purchase order", "purchase order", nil, err)
		}
		orders = append(orders, po)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list purchase orders", "purchase order", nil, err)
	}
	return orders, nil
}
