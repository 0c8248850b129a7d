package models

import "gorm.io/gorm"

// Testimonial is marketing content shown on the landing page.
type Testimonial struct {
	gorm.Model
	StudentName string `json:"student_name"`
	CourseName  string `json:"course_name" gorm:"default:''"`
	Content     string `json:"content" gorm:"type:text"`
	Rating      int    `json:"rating" gorm:"default:5"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Video is a promotional/class video, optionally scoped to a center.
type Video struct {
	gorm.Model
	Title     string `json:"title"`
	URL       string `json:"url"`
	CenterID  *uint  `json:"center_id" gorm:"index"`
	IsDeleted bool   `gorm:"default:false"`

	Center *Center `json:"center,omitempty" gorm:"foreignKey:CenterID"`
}

// Achievement is a showcase entry (toppers, placements), optionally
// scoped to a center.
type Achievement struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url" gorm:"default:''"`
	CenterID    *uint  `json:"center_id" gorm:"index"`
	IsDeleted   bool   `gorm:"default:false"`

	Center *Center `json:"center,omitempty" gorm:"foreignKey:CenterID"`
}
