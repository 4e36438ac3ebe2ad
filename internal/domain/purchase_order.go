package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type POStatus string

const (
	POStatusDraft     POStatus = "draft"
	POStatusProcessed POStatus = "processed"
	POStatusActive    POStatus = "active"
	POStatusReturned  POStatus = "returned"
	POStatusCancelled POStatus = "cancelled"
)

// PONumberPrefix is the document prefix for purchase order numbers.
const PONumberPrefix = "PO"

// poTransitions lists every legal status change. Anything absent is rejected.
var poTransitions = map[POStatus][]POStatus{
	POStatusDraft:     {POStatusProcessed, POStatusCancelled},
	POStatusProcessed: {POStatusActive, POStatusCancelled},
	POStatusActive:    {POStatusReturned, POStatusCancelled},
}

// AllPOStatuses returns every status in lifecycle order.
func AllPOStatuses() []POStatus {
	return []POStatus{POStatusDraft, POStatusProcessed, POStatusActive, POStatusReturned, POStatusCancelled}
}

func (s POStatus) String() string {
	return string(s)
}

func (s POStatus) IsValid() bool {
	switch s {
	case POStatusDraft, POStatusProcessed, POStatusActive, POStatusReturned, POStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s POStatus) IsTerminal() bool {
	return s == POStatusReturned || s == POStatusCancelled
}

// IsInitial reports whether a purchase order may be created in this status.
func (s POStatus) IsInitial() bool {
	return s == POStatusDraft || s == POStatusProcessed
}

// HoldsItems reports whether a PO in this status keeps its items rented.
func (s POStatus) HoldsItems() bool {
	return s == POStatusDraft || s == POStatusProcessed || s == POStatusActive
}

// ReleasesItems reports whether entering this status frees the PO's items.
func (s POStatus) ReleasesItems() bool {
	return s == POStatusReturned || s == POStatusCancelled
}

// CanTransitionTo reports whether the status may change from s to target.
func (s POStatus) CanTransitionTo(target POStatus) bool {
	for _, allowed := range poTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// HoldingPOStatuses returns the statuses that keep items rented.
func HoldingPOStatuses() []string {
	return []string{string(POStatusDraft), string(POStatusProcessed), string(POStatusActive)}
}

type PurchaseOrder struct {
	ID                int64           `json:"id"`
	PONumber          string          `json:"po_number"`
	CustomerID        int64           `json:"customer_id"`
	CustomerName      string          `json:"customer_name,omitempty"`
	CustomerPhone     string          `json:"customer_phone,omitempty"`
	CustomerAddress   string          `json:"customer_address,omitempty"`
	CustomerKTP       string          `json:"ktp_number,omitempty"`
	RentalStart       time.Time       `json:"rental_start"`
	RentalEnd         time.Time       `json:"rental_end"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	DPAmount          decimal.Decimal `json:"dp_amount"`
	SignatureCustomer string          `json:"signature_customer"`
	SignatureAdmin    string          `json:"signature_admin"`
	Notes             string          `json:"notes"`
	Status            POStatus        `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Items             []POLineItem    `json:"items,omitempty"`
}

// POLineItem snapshots the daily rate at order time so later rate changes
// never alter a historical order.
type POLineItem struct {
	ID         int64           `json:"id"`
	POID       int64           `json:"po_id"`
	ItemID     int64           `json:"item_id"`
	ItemName   string          `json:"item_name,omitempty"`
	Brand      string          `json:"brand,omitempty"`
	Capacity   string          `json:"capacity,omitempty"`
	ItemStatus ItemStatus      `json:"item_status,omitempty"`
	Quantity   int             `json:"quantity"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// PODetail is a purchase order with its payments and derived balance.
type PODetail struct {
	PurchaseOrder
	RentalDays       int             `json:"rental_days"`
	Invoices         []Invoice       `json:"invoices"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	RemainingPayment decimal.Decimal `json:"remaining_payment"`
}

type POLineInput struct {
	ItemID    int64           `json:"item_id" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	DailyRate decimal.Decimal `json:"daily_rate" validate:"gte=0,money"`
}

type CreatePOInput struct {
	CustomerID        int64           `json:"customer_id" validate:"required,gt=0"`
	Items             []POLineInput   `json:"items" validate:"required,min=1,dive"`
	RentalStart       string          `json:"rental_start" validate:"required,datetime=2006-01-02"`
	RentalEnd         string          `json:"rental_end" validate:"required,datetime=2006-01-02"`
	DPAmount          decimal.Decimal `json:"dp_amount" validate:"gte=0,money"`
	SignatureCustomer string          `json:"signature_customer"`
	SignatureAdmin    string          `json:"signature_admin"`
	Notes             string          `json:"notes"`
	Status            POStatus        `json:"status" validate:"omitempty,oneof=draft processed"`
}

type POFilter struct {
	Search string
	Status POStatus
	Page   Page
}
