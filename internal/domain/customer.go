package domain

import "time"

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	KTPNumber string    `json:"ktp_number"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CustomerInput struct {
	Name      string `json:"name" validate:"required,max=255"`
	Address   string `json:"address"`
	KTPNumber string `json:"ktp_number" validate:"required,max=32"`
	Phone     string `json:"phone" validate:"max=32"`
}

type CustomerFilter struct {
	Search string
	Page   Page
}
