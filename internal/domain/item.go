package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "available"
	ItemStatusRented      ItemStatus = "rented"
	ItemStatusMaintenance ItemStatus = "maintenance"
)

func (s ItemStatus) IsValid() bool {
	return s == ItemStatusAvailable || s == ItemStatusRented || s == ItemStatusMaintenance
}

type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Capacity    string          `json:"capacity"`
	FuelType    string          `json:"fuel_type"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Status      ItemStatus      `json:"status"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemInput is the admin-editable part of an item. Status may only be set
// to available or maintenance; rented is owned by the PO lifecycle.
type ItemInput struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Brand       string          `json:"brand" validate:"max=255"`
	Capacity    string          `json:"capacity" validate:"max=64"`
	FuelType    string          `json:"fuel_type" validate:"max=64"`
	DailyRate   decimal.Decimal `json:"daily_rate" validate:"gte=0,money"`
	Status      ItemStatus      `json:"status" validate:"omitempty,oneof=available maintenance"`
	Description string          `json:"description"`
}

// NewItemRentedError reports an attempt to move a rented item out of rented
// status outside the purchase order lifecycle.
func NewItemRentedError() *Error {
	return NewConflictError("item is rented; its status changes when the purchase order is returned or cancelled", false)
}
