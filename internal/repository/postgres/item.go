package postgres

import (
	"context"
	"database/sql"
	"errors"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"

	"github.com/lib/pq"
)

type itemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, name, brand, capacity, fuel_type, daily_rate, status, description, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }, it *domain.Item) error {
	return row.Scan(&it.ID, &it.Name, &it.Brand, &it.Capacity, &it.FuelType, &it.DailyRate, &it.Status, &it.Description, &it.CreatedAt, &it.UpdatedAt)
}

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (name, brand, capacity, fuel_type, daily_rate, status, description)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, it.Name, it.Brand, it.Capacity, it.FuelType, it.DailyRate, it.Status, it.Description).
		Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	return mapError("create item", "item", it.Name, err)
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	it := &domain.Item{}
	if err := scanItem(r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id), it); err != nil {
		return nil, mapError("get item", "item", id, err)
	}
	return it, nil
}

// Update refuses to move a rented item to another status, checked in the
// same statement as the write.
func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET name = $1, brand = $2, capacity = $3, fuel_type = $4, daily_rate = $5,
	          status = $6, description = $7, updated_at = NOW()
	          WHERE id = $8 AND (status <> 'rented' OR $6 = 'rented')
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, it.Name, it.Brand, it.Capacity, it.FuelType, it.DailyRate, it.Status, it.Description, it.ID).
		Scan(&it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		var current domain.ItemStatus
		if err := r.db.QueryRowContext(ctx, `SELECT status FROM items WHERE id = $1`, it.ID).Scan(&current); err != nil {
			return mapError("update item", "item", it.ID, err)
		}
		return domain.NewItemRentedError()
	}
	return mapError("update item", "item", it.ID, err)
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return mapError("delete item", "item", id, err)
	}
	return requireAffected(res, "item", id)
}

func (r *itemRepository) List(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error) {
	where := newWhere()
	if status != "" {
		where.add("status = " + where.arg(status))
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items`+where.sql()+` ORDER BY name, id`, where.args...)
	if err != nil {
		return nil, mapError("list items", "item", nil, err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *itemRepository) LockForRental(ctx context.Context, ids []int64) ([]domain.Item, error) {
	logger.DatabaseCall(ctx, "itemRepository.LockForRental", "ids", ids)
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, mapError("lock items", "item", ids, err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *itemRepository) MarkRented(ctx context.Context, ids []int64) (int64, error) {
	query := `UPDATE items SET status = 'rented', updated_at = NOW() WHERE id = ANY($1)`
	res, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return 0, mapError("mark items rented", "item", ids, err)
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult(ctx, "itemRepository.MarkRented", n, nil)
	return n, nil
}

func (r *itemRepository) ReleaseForPO(ctx context.Context, poID int64) (int64, error) {
	query := `UPDATE items SET status = 'available', updated_at = NOW()
	          WHERE id IN (SELECT item_id FROM po_items WHERE po_id = $1)
	            AND status = 'rented'
	            AND NOT EXISTS (
	                SELECT 1 FROM po_items pi JOIN po p ON p.id = pi.po_id
	                WHERE pi.item_id = items.id AND p.id <> $1 AND p.status = ANY($2)
	            )`
	res, err := r.db.ExecContext(ctx, query, poID, pq.Array(domain.HoldingPOStatuses()))
	if err != nil {
		return 0, mapError("release items", "purchase order", poID, err)
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult(ctx, "itemRepository.ReleaseForPO", n, nil, "poID", poID)
	return n, nil
}

func collectItems(rows interface {
	Next() bool
	Err() error
	Scan(...any) error
}) ([]domain.Item, error) {
	items := []domain.Item{}
	for rows.Next() {
		var it domain.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, mapError("scan item", "item", nil, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("read items", "item", nil, err)
	}
	return items, nil
}
