package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// User is a student or admin profile. An admin with CenterID set is a
// center-bound admin and only ever sees that center's data; a nil
// CenterID on an admin means a global admin.
type User struct {
	gorm.Model
	FullName  string     `json:"full_name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Phone     string     `json:"phone" gorm:"default:''"`
	Role      string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	Password  string     `json:"-" gorm:"not null"`
	CenterID  *uint      `json:"center_id" gorm:"index"` // optional home center
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false"`

	Center *Center `json:"center,omitempty" gorm:"foreignKey:CenterID"`
}
