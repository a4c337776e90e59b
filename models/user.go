package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a staff member of the print shop
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0Id"` // Auth0 user ID (from 'sub' claim)
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	FullName  string         `gorm:"not null" json:"fullName"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Role      UserRole       `gorm:"not null;default:'designer'" json:"role"`
	IsActive  bool           `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
