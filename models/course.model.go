package models

import "gorm.io/gorm"

// Course is an offered training course. Fee is stored in whole rupees.
type Course struct {
	gorm.Model
	Name            string `json:"name" gorm:"not null"`
	FullName        string `json:"full_name" gorm:"default:''"`
	Duration        string `json:"duration" gorm:"default:''"` // e.g. "6 months"
	Fee             int    `json:"fee" gorm:"default:0"`
	DiscountPercent int    `json:"discount_percent" gorm:"default:0"`
	Category        string `json:"category" gorm:"default:''"`
	IsPopular       bool   `json:"is_popular" gorm:"default:false"`
	IsDeleted       bool   `gorm:"default:false"`
}

// Lesson is a static curriculum item within a course.
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	IsDeleted       bool   `gorm:"default:false"`

	Course Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
