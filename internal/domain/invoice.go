package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeDP          PaymentType = "dp"
	PaymentTypeInstallment PaymentType = "installment"
	PaymentTypeFull        PaymentType = "full"
)

// InvoiceNumberPrefix is the document prefix for invoice numbers.
const InvoiceNumberPrefix = "INV"

func (t PaymentType) IsValid() bool {
	return t == PaymentTypeDP || t == PaymentTypeInstallment || t == PaymentTypeFull
}

// Invoice records one payment against a purchase order. Invoices are never
// updated or deleted.
type Invoice struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	POID          int64           `json:"po_id"`
	PONumber      string          `json:"po_number,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentType   PaymentType     `json:"payment_type"`
	PaymentDate   time.Time       `json:"payment_date"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

type RecordPaymentInput struct {
	POID        int64           `json:"po_id" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0,money"`
	PaymentType PaymentType     `json:"payment_type" validate:"required,oneof=dp installment full"`
	PaymentDate string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Notes       string          `json:"notes"`
}

// PaymentReceipt is the outcome of recording a payment: the invoice, its
// mirrored ledger entry and the balance left on the purchase order.
type PaymentReceipt struct {
	Invoice          Invoice         `json:"invoice"`
	FinanceEntryID   int64           `json:"finance_entry_id"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	RemainingPayment decimal.Decimal `json:"remaining_payment"`
	Overpaid         bool            `json:"overpaid"`
}

type InvoiceFilter struct {
	Search string
	POID   int64
	Page   Page
}
