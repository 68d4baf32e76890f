package models

import "time"

// UserRole distinguishes the two kinds of panel accounts.
type UserRole string

// Possible admin roles.
const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleLevelAdmin UserRole = "LEVEL_ADMIN"
)

// IsValid reports whether the value belongs to the closed role set.
func (r UserRole) IsValid() bool {
	return r == RoleSuperAdmin || r == RoleLevelAdmin
}

// BootstrapUsername names the permanent super-admin account seeded on first
// run. Accounts carrying this username can never be removed.
const BootstrapUsername = "superadmin"

// AdminUser is a panel account. AssignedLevel is meaningful only for level
// admins; super admins see every level.
type AdminUser struct {
	ID            string       `gorm:"primaryKey;size:36" json:"id"`
	Username      string       `gorm:"size:100;not null;index" json:"username"`
	PasswordHash  string       `gorm:"size:255;not null" json:"-"`
	Role          UserRole     `gorm:"size:30;not null" json:"role"`
	AssignedLevel *SchoolLevel `gorm:"size:20" json:"assigned_level,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsBootstrap reports whether this is the permanent super-admin account.
func (u AdminUser) IsBootstrap() bool {
	return u.Username == BootstrapUsername
}

// CanAccessLevel reports whether the account may see applicants of the given
// level. Super admins see everything; level admins only their own tier.
func (u AdminUser) CanAccessLevel(level SchoolLevel) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	return u.AssignedLevel != nil && *u.AssignedLevel == level
}
