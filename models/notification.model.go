package models

import "gorm.io/gorm"

// Notification types
const (
	NotificationAdmission        = "admission"
	NotificationCourseCompletion = "course_completion"
	NotificationPaymentReminder  = "payment_reminder"
	NotificationNewEnrollment    = "new_enrollment" // staff review queue
)

// Notification is an in-app message. UserID 0 marks a system
// notification addressed to admin staff.
type Notification struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"index"`
	Type    string `json:"type" gorm:"not null"`
	Title   string `json:"title"`
	Message string `json:"message" gorm:"type:text"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}
