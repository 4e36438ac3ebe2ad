package postgres

import (
	"database/sql"
	"errors"

	"genset-rental-backend/internal/domain"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

type uniqueRule struct {
	message   string
	retryable bool
}

// Collisions on allocated document numbers are retryable.
var uniqueConstraints = map[string]uniqueRule{
	"customers_ktp_number_key":      {message: "KTP number already exists"},
	"po_po_number_key":              {message: "purchase order number already allocated", retryable: true},
	"invoices_invoice_number_key":   {message: "invoice number already allocated", retryable: true},
	"site_settings_setting_key_key": {message: "setting key already exists"},
	"users_username_key":            {message: "username already exists"},
	"users_email_key":               {message: "email already exists"},
}

var foreignKeyMessages = map[string]string{
	"po_customer_id_fkey":   "customer is referenced by purchase orders",
	"po_items_item_id_fkey": "item is referenced by purchase orders",
	"invoices_po_id_fkey":   "purchase order does not exist",
}

// mapError converts driver errors into domain errors. entity and id describe
// the row for not-found reporting.
func mapError(op, entity string, id any, err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(entity, id)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			if rule, ok := uniqueConstraints[pqErr.Constraint]; ok {
				return &domain.Error{Kind: domain.KindConflict, Message: rule.message, Retryable: rule.retryable, Err: err}
			}
			return &domain.Error{Kind: domain.KindConflict, Message: entity + " already exists", Err: err}
		case pqForeignKeyViolation:
			msg, ok := foreignKeyMessages[pqErr.Constraint]
			if !ok {
				msg = entity + " is referenced by other records"
			}
			return &domain.Error{Kind: domain.KindConflict, Message: msg, Err: err}
		case pqCheckViolation:
			return &domain.Error{Kind: domain.KindValidation, Message: "value violates constraint " + pqErr.Constraint, Err: err}
		}
	}
	return domain.NewStorageError(op, err)
}
