package models

import "gorm.io/gorm"

// User represents a registered customer.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;type:varchar(100);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
}
