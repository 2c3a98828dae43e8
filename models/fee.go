package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	FeePending = "pending"
	FeePaid    = "paid"
	// FeeOverdue is computed at query time from DueDate vs now; never stored.
	FeeOverdue = "overdue"

	FeeTypeHostel      = "hostel_fee"
	FeeTypeMaintenance = "maintenance"
)

// Fee is a billing obligation tied to a student.
type Fee struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StudentID uint `gorm:"index;column:student_id" json:"student_id"`

	Amount  float64 `json:"amount"`
	FeeType string  `gorm:"column:fee_type;size:50" json:"fee_type"`

	DueDate  time.Time  `gorm:"column:due_date" json:"due_date"`
	PaidDate *time.Time `gorm:"column:paid_date" json:"paid_date,omitempty"`
	Status   string     `gorm:"size:20;default:pending" json:"status"` // pending | paid (overdue is derived)

	ReceiptNumber *string        `gorm:"column:receipt_number;uniqueIndex;size:50" json:"receipt_number,omitempty"`
	PaymentMethod string         `gorm:"column:payment_method;size:50" json:"payment_method,omitempty"`
	PaymentMeta   datatypes.JSON `gorm:"column:payment_meta" json:"payment_meta,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Student User `gorm:"belongsTo;foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

// EffectiveStatus reports 'overdue' for pending fees past their due date.
func (f *Fee) EffectiveStatus(now time.Time) string {
	if f.Status == FeePending && now.After(f.DueDate) {
		return FeeOverdue
	}
	return f.Status
}
