package model

import "time"

// User represents an account that can sign in.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:60;not null;index"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Address      string    `json:"address" gorm:"size:400"`
	Role         Role      `json:"role" gorm:"type:varchar(10);not null;default:'user';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}

// IsOwner reports whether the user may own stores.
func (u *User) IsOwner() bool {
	return u != nil && u.Role == RoleOwner
}
