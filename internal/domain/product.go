package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product is a catalogue entry shown on the public site. It is unrelated to
// the rentable Item inventory.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Capacity     string          `json:"capacity"`
	PowerOutput  string          `json:"power_output"`
	FuelType     string          `json:"fuel_type"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	Description  string          `json:"description"`
	Features     string          `json:"features"`
	Image        *string         `json:"image"`
	DisplayOrder int             `json:"display_order"`
	Status       ProductStatus   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ProductInput struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Brand        string          `json:"brand" validate:"max=255"`
	Capacity     string          `json:"capacity" validate:"max=64"`
	PowerOutput  string          `json:"power_output" validate:"max=64"`
	FuelType     string          `json:"fuel_type" validate:"max=64"`
	DailyRate    decimal.Decimal `json:"daily_rate" validate:"gte=0,money"`
	Description  string          `json:"description"`
	Features     string          `json:"features"`
	DisplayOrder int             `json:"display_order" validate:"gte=0"`
	Status       ProductStatus   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Upload is a file handed to the storage collaborator.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        []byte
}
