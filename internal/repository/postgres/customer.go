package postgres

import (
	"context"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"
)

type customerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, address, ktp_number, phone, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }, c *domain.Customer) error {
	return row.Scan(&c.ID, &c.Name, &c.Address, &c.KTPNumber, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, address, ktp_number, phone)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Address, c.KTPNumber, c.Phone).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapError("create customer", "customer", c.KTPNumber, err)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c := &domain.Customer{}
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, id), c); err != nil {
		return nil, mapError("get customer", "customer", id, err)
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name = $1, address = $2, ktp_number = $3, phone = $4, updated_at = NOW()
	          WHERE id = $5 RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Address, c.KTPNumber, c.Phone, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapError("update customer", "customer", c.ID, err)
}

// Delete fails with a conflict while any purchase order references the customer.
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return mapError("delete customer", "customer", id, err)
	}
	return requireAffected(res, "customer", id)
}

func (r *customerRepository) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error) {
	logger.DatabaseCall(ctx, "customerRepository.List", "search", filter.Search)

	where := newWhere()
	if filter.Search != "" {
		p := where.arg("%" + filter.Search + "%")
		where.add("(name ILIKE " + p + " OR ktp_number ILIKE " + p + " OR phone ILIKE " + p + ")")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`+where.sql(), where.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count customers", "customer", nil, err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + where.sql() + ` ORDER BY created_at DESC, id DESC` + where.page(filter.Page)
	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, 0, mapError("list customers", "customer", nil, err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, 0, mapError("scan customer", "customer", nil, err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list customers", "customer", nil, err)
	}

	logger.DatabaseResult(ctx, "customerRepository.List", int64(len(customers)), nil)
	return customers, total, nil
}
