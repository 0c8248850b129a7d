package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentHistory is the append-only ledger of individual payments
// against an enrollment. Enrollment.AmountPaid and PaymentStatus are
// derived from this ledger.
type PaymentHistory struct {
	gorm.Model
	EnrollmentID  uint      `json:"enrollment_id" gorm:"index;not null"`
	Amount        int       `json:"amount" gorm:"not null"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method" gorm:"default:'cash'"` // cash, upi, card, online
	ReceiptNumber string    `json:"receipt_number" gorm:"unique;not null"`
	Notes         string    `json:"notes" gorm:"default:''"`

	Enrollment Enrollment `json:"-" gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
}

// PaymentGatewayEvent records one processed checkout-settlement
// callback. The unique OrderID makes webhook redelivery a no-op.
type PaymentGatewayEvent struct {
	gorm.Model
	OrderID           string         `json:"order_id" gorm:"uniqueIndex;not null"`
	TransactionStatus string         `json:"transaction_status" gorm:"default:''"`
	GrossAmount       int            `json:"gross_amount" gorm:"default:0"`
	EnrollmentID      *uint          `json:"enrollment_id" gorm:"index"`
	Payload           datatypes.JSON `json:"payload"`
}
