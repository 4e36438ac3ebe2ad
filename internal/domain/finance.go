package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type FinanceType string

const (
	FinanceTypeIncome  FinanceType = "income"
	FinanceTypeExpense FinanceType = "expense"
)

// ReferenceTypeInvoice marks ledger entries mirrored from an invoice.
const ReferenceTypeInvoice = "invoice"

func (t FinanceType) IsValid() bool {
	return t == FinanceTypeIncome || t == FinanceTypeExpense
}

type FinanceEntry struct {
	ID              int64           `json:"id"`
	TransactionType FinanceType     `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceType   *string         `json:"reference_type,omitempty"`
	ReferenceID     *int64          `json:"reference_id,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewInvoiceIncomeEntry builds the ledger entry that mirrors an invoice.
func NewInvoiceIncomeEntry(inv *Invoice) *FinanceEntry {
	refType := ReferenceTypeInvoice
	refID := inv.ID
	return &FinanceEntry{
		TransactionType: FinanceTypeIncome,
		Amount:          inv.Amount,
		Description:     fmt.Sprintf("Payment from invoice %s", inv.InvoiceNumber),
		ReferenceType:   &refType,
		ReferenceID:     &refID,
		TransactionDate: inv.PaymentDate,
	}
}

type FinanceEntryInput struct {
	TransactionType FinanceType     `json:"transaction_type" validate:"required,oneof=income expense"`
	Amount          decimal.Decimal `json:"amount" validate:"gt=0,money"`
	Description     string          `json:"description" validate:"required,max=500"`
	TransactionDate string          `json:"transaction_date" validate:"required,datetime=2006-01-02"`
}

type FinanceFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      FinanceType
	Search    string
	Page      Page
}

// FinanceTotals sums the ledger by transaction type.
type FinanceTotals struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

func NewFinanceTotals(income, expense decimal.Decimal) FinanceTotals {
	return FinanceTotals{TotalIncome: income, TotalExpense: expense, Balance: income.Sub(expense)}
}
