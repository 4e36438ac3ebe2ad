package postgres

import (
	"context"
	"database/sql"
	"errors"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/utils"
)

// numberedDocuments maps a prefix to the table and column that hold the
// numbers it has issued.
var numberedDocuments = map[string]struct{ table, column string }{
	domain.PONumberPrefix:      {"po", "po_number"},
	domain.InvoiceNumberPrefix: {"invoices", "invoice_number"},
}

type sequenceRepository struct {
	db DBTX
}

func NewSequenceRepository(db DBTX) repository.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next locks the counter row for prefix, so concurrent allocations for the
// same prefix serialize on it until the surrounding transaction ends. An empty
// counter continues from the highest number already stored for the prefix.
func (r *sequenceRepository) Next(ctx context.Context, prefix string) (string, error) {
	logger.DatabaseCall(ctx, "sequenceRepository.Next", "prefix", prefix)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_sequences (prefix, last_number) VALUES ($1, '') ON CONFLICT (prefix) DO NOTHING`, prefix)
	if err != nil {
		return "", mapError("init document sequence", "document sequence", prefix, err)
	}

	var last string
	err = r.db.QueryRowContext(ctx,
		`SELECT last_number FROM document_sequences WHERE prefix = $1 FOR UPDATE`, prefix).Scan(&last)
	if err != nil {
		return "", mapError("lock document sequence", "document sequence", prefix, err)
	}

	if last == "" {
		if last, err = r.highestIssued(ctx, prefix); err != nil {
			return "", err
		}
	}

	next := utils.NextNumber(prefix, last)
	_, err = r.db.ExecContext(ctx,
		`UPDATE document_sequences SET last_number = $2 WHERE prefix = $1`, prefix, next)
	if err != nil {
		return "", mapError("advance document sequence", "document sequence", prefix, err)
	}

	logger.DatabaseResult(ctx, "sequenceRepository.Next", 1, nil, "number", next)
	return next, nil
}

func (r *sequenceRepository) highestIssued(ctx context.Context, prefix string) (string, error) {
	doc, ok := numberedDocuments[prefix]
	if !ok {
		return "", nil
	}
	// Numbers are zero padded to a minimum width, so longer sorts higher.
	query := `SELECT ` + doc.column + ` FROM ` + doc.table + ` WHERE ` + doc.column + ` LIKE $1 || '%'
	          ORDER BY LENGTH(` + doc.column + `) DESC, ` + doc.column + ` DESC LIMIT 1`
	var last string
	err := r.db.QueryRowContext(ctx, query, prefix).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", mapError("seed document sequence", "document sequence", prefix, err)
	}
	return last, nil
}
