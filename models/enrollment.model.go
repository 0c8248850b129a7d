package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentCancelled = "cancelled"
)

// Payment statuses (derived from the payment ledger, never set by hand)
const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Enrollment is a student's registration in one course at one center.
// It is the aggregate root for attendance, lesson progress, payments
// and certificates. AmountPaid mirrors the summed payment ledger and is
// only ever updated inside the same transaction as a ledger insert.
type Enrollment struct {
	gorm.Model
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	CourseID       uint      `json:"course_id" gorm:"index;not null"`
	CenterID       *uint     `json:"center_id" gorm:"index"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Status         string    `json:"status" gorm:"default:'active'"`          // active, completed, cancelled
	PaymentStatus  string    `json:"payment_status" gorm:"default:'pending'"` // pending, partial, paid
	AmountPaid     int       `json:"amount_paid" gorm:"default:0"`
	BatchTiming    string    `json:"batch_timing" gorm:"default:''"`
	IsDeleted      bool      `gorm:"default:false"`

	User   User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course  `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Center *Center `json:"center,omitempty" gorm:"foreignKey:CenterID"`
}

// Attendance is one row per (enrollment, date); marking attendance for
// the same day again overwrites the earlier row.
type Attendance struct {
	gorm.Model
	EnrollmentID uint      `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_attendance_session"`
	SessionDate  time.Time `json:"session_date" gorm:"not null;uniqueIndex:idx_attendance_session"`
	Present      bool      `json:"present" gorm:"default:false"`
	Notes        string    `json:"notes" gorm:"default:''"`

	Enrollment Enrollment `json:"-" gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
}

// LessonProgress tracks completion of one lesson for one enrollment.
type LessonProgress struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_lesson_progress"`
	LessonID     uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_lesson_progress"`
	Completed    bool       `json:"completed" gorm:"default:false"`
	CompletedAt  *time.Time `json:"completed_at"`

	Enrollment Enrollment `json:"-" gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
	Lesson     Lesson     `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}

// Certificate is issued once per enrollment; the unique index rejects a
// second issuance instead of overwriting the first.
type Certificate struct {
	gorm.Model
	EnrollmentID      uint      `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique;not null"`
	IssueDate         time.Time `json:"issue_date"`
	FileURL           string    `json:"file_url" gorm:"default:''"`

	Enrollment Enrollment `json:"-" gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
}
