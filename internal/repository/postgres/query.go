package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"genset-rental-backend/internal/domain"
)

// whereClause accumulates filter conditions and their positional arguments.
type whereClause struct {
	conds []string
	args  []any
}

func newWhere() *whereClause {
	return &whereClause{}
}

// arg registers v and returns its placeholder.
func (w *whereClause) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) add(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereClause) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT and OFFSET placeholders. Call it after the count query
// has captured its arguments.
func (w *whereClause) page(p domain.Page) string {
	if p.Limit <= 0 {
		return ""
	}
	limit := w.arg(p.Limit)
	offset := w.arg(p.Offset())
	return " LIMIT " + limit + " OFFSET " + offset
}

func requireAffected(res sql.Result, entity string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError("read affected rows", err)
	}
	if n == 0 {
		return domain.NewNotFoundError(entity, id)
	}
	return nil
}
