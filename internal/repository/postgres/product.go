package postgres

import (
	"context"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/repository"
)

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, brand, capacity, power_output, fuel_type, daily_rate, description, features,
       image, display_order, status, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *domain.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Brand, &p.Capacity, &p.PowerOutput, &p.FuelType, &p.DailyRate, &p.Description, &p.Features,
		&p.Image, &p.DisplayOrder, &p.Status, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, brand, capacity, power_output, fuel_type, daily_rate, description, features,
	                                image, display_order, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Brand, p.Capacity, p.PowerOutput, p.FuelType, p.DailyRate, p.Description, p.Features,
		p.Image, p.DisplayOrder, p.Status).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapError("create product", "product", p.Name, err)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	if err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), p); err != nil {
		return nil, mapError("get product", "product", id, err)
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name = $1, brand = $2, capacity = $3, power_output = $4, fuel_type = $5, daily_rate = $6,
	          description = $7, features = $8, image = $9, display_order = $10, status = $11, updated_at = NOW()
	          WHERE id = $12 RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Brand, p.Capacity, p.PowerOutput, p.FuelType, p.DailyRate,
		p.Description, p.Features, p.Image, p.DisplayOrder, p.Status, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError("update product", "product", p.ID, err)
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError("delete product", "product", id, err)
	}
	return requireAffected(res, "product", id)
}

func (r *productRepository) List(ctx context.Context, onlyActive bool) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if onlyActive {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY display_order, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list products", "product", nil, err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, mapError("scan product", "product", nil, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list products", "product", nil, err)
	}
	return products, nil
}
