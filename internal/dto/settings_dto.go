package dto

import "time"

// SettingsUpdateRequest replaces the app settings.
type SettingsUpdateRequest struct {
	AdminWhatsApp string `json:"admin_whatsapp" validate:"required"`
}

// SettingsResponse is the settings representation returned to the panel.
type SettingsResponse struct {
	AdminWhatsApp string    `json:"admin_whatsapp"`
	UpdatedAt     time.Time `json:"updated_at"`
}
