package domain

import "time"

// HeroImageSettingKey holds the storage reference of the landing page image.
const HeroImageSettingKey = "hero_image"

type SiteSetting struct {
	ID          int64     `json:"id"`
	Key         string    `json:"setting_key"`
	Value       string    `json:"setting_value"`
	Type        string    `json:"setting_type"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SiteSettingInput struct {
	Key         string `json:"setting_key" validate:"required,max=100"`
	Value       string `json:"setting_value"`
	Type        string `json:"setting_type" validate:"omitempty,oneof=text textarea image json number url"`
	Description string `json:"description"`
}
