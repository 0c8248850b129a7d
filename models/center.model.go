package models

import "gorm.io/gorm"

// Center represents a physical institute branch. It is the tenancy
// boundary for center-bound admin visibility.
type Center struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Address   string `json:"address" gorm:"default:''"`
	Phone     string `json:"phone" gorm:"default:''"`
	Email     string `json:"email" gorm:"default:''"`
	IsDeleted bool   `gorm:"default:false"`
}
