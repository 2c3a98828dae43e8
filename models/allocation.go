package models

import "time"

const (
	AllocationActive     = "active"
	AllocationCheckedOut = "checked_out"
)

// Allocation binds a student to a specific room. At most one active
// allocation per student; it is the only writer of Room.CurrentOccupancy.
type Allocation struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StudentID uint `gorm:"index;column:student_id" json:"student_id"`
	RoomID    uint `gorm:"index;column:room_id" json:"room_id"`

	AllocatedAt  time.Time  `gorm:"column:allocated_at;autoCreateTime" json:"allocated_at"`
	CheckInDate  *time.Time `gorm:"column:check_in_date" json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `gorm:"column:check_out_date" json:"check_out_date,omitempty"`

	Status         string `gorm:"size:20;default:active" json:"status"` // active | checked_out
	CheckoutReason string `gorm:"column:checkout_reason;size:255" json:"checkout_reason,omitempty"`

	Student User `gorm:"belongsTo;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Room    Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
