package entity

import (
	"gorm.io/gorm"
)

// Admin is an account allowed into the admin panel (recipient lists, exports).
type Admin struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `json:"-"`
	Role     string `gorm:"not null;default:admin" json:"role"`
}
