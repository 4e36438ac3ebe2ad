package postgres

import (
	"context"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/repository"
)

type contactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, c *domain.ContactSubmission) error {
	query := `INSERT INTO contact_submissions (name, email, phone, subject, message)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, status, created_at`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Subject, c.Message).Scan(&c.ID, &c.Status, &c.CreatedAt)
	return mapError("create contact submission", "contact submission", c.Email, err)
}

func (r *contactRepository) List(ctx context.Context, status domain.ContactStatus) ([]domain.ContactSubmission, error) {
	where := newWhere()
	if status != "" {
		where.add("status = " + where.arg(status))
	}
	query := `SELECT id, name, email, phone, subject, message, status, created_at
	          FROM contact_submissions` + where.sql() + ` ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, mapError("list contact submissions", "contact submission", nil, err)
	}
	defer rows.Close()

	submissions := []domain.ContactSubmission{}
	for rows.Next() {
		var c domain.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, mapError("scan contact submission", "contact submission", nil, err)
		}
		submissions = append(submissions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list contact submissions", "contact submission", nil, err)
	}
	return submissions, nil
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id int64, status domain.ContactStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contact_submissions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return mapError("update contact submission", "contact submission", id, err)
	}
	return requireAffected(res, "contact submission", id)
}
