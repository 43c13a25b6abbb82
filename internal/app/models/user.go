package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	UserID       int64     `json:"userId" db:"user_id"`                 // Surrogate key
	AccountID    string    `json:"accountId" db:"account_id"`           // Institutional identifier: 13-digit student or 8-digit staff number
	Name         string    `json:"name" db:"name"`                      // Display name
	Role         Role      `json:"role" db:"role"`                      // student, teacher or admin
	Department   string    `json:"department" db:"department"`          // Organizational unit
	Email        string    `json:"email" db:"email"`                    // Unique email address
	PasswordHash string    `json:"-" db:"password_hash"`                // bcrypt hash (excluded from JSON)
	IsActive     bool      `json:"isActive" db:"is_active"`             // Whether the account may log in
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`           // Row creation time
	CreatedBy    CreatedBy `json:"createdBy" db:"created_by"`           // self_register, admin_import or system
}
