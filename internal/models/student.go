package models

import (
	"time"

	"gorm.io/datatypes"
)

// RegistrationStatus tracks where an applicant sits in the admission pipeline.
// The labels are the Indonesian wording shown to staff. Transitions are
// deliberately unconstrained: any status may be set from any other.
type RegistrationStatus string

// Possible registration statuses.
const (
	StatusPending   RegistrationStatus = "Menunggu"
	StatusVerified  RegistrationStatus = "Terverifikasi"
	StatusRejected  RegistrationStatus = "Ditolak"
	StatusCompleted RegistrationStatus = "Diterima"
)

// IsValid reports whether the value belongs to the closed status set.
func (s RegistrationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

// RegistrationStatuses returns every status, in pipeline order.
func RegistrationStatuses() []RegistrationStatus {
	return []RegistrationStatus{StatusPending, StatusVerified, StatusRejected, StatusCompleted}
}

// Document describes one stored berkas attached to an applicant.
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Student is an admission applicant. Documents are append-only and persisted
// as a JSON column alongside the row.
type Student struct {
	ID               string                        `gorm:"primaryKey;size:36" json:"id"`
	FullName         string                        `gorm:"size:255;not null" json:"full_name"`
	NickName         string                        `gorm:"size:100;not null" json:"nick_name"`
	Level            SchoolLevel                   `gorm:"size:20;not null;index" json:"level"`
	ParentPhone      string                        `gorm:"size:50;not null" json:"parent_phone"`
	RegistrationDate time.Time                     `gorm:"type:date;not null" json:"registration_date"`
	Status           RegistrationStatus            `gorm:"size:30;not null;index" json:"status"`
	Documents        datatypes.JSONSlice[Document] `json:"documents"`
	CreatedAt        time.Time                     `json:"created_at"`
	UpdatedAt        time.Time                     `json:"updated_at"`
}
