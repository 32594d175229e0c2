package models

import (
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// User is an administrator account. Visitors booking appointments are not
// users; they exist only as contact fields on their appointments.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"unique"`
	Password  string    `json:"password,omitempty"`
	Role      string    `json:"role" gorm:"default:admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
