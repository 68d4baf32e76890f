package models

import "time"

// DefaultAdminWhatsApp is the destination used before staff configure their
// own number.
const DefaultAdminWhatsApp = "6281234567890"

// AppSettings is the single-row application configuration staff can edit from
// the panel. The row is replaced wholesale on every save.
type AppSettings struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	AdminWhatsApp string    `gorm:"size:50;not null" json:"admin_whatsapp"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultSettings returns the built-in configuration used when nothing has
// been saved yet or the stored row cannot be read.
func DefaultSettings() AppSettings {
	return AppSettings{ID: 1, AdminWhatsApp: DefaultAdminWhatsApp}
}
