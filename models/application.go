package models

import "time"

const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Application is a student's request to be housed, pending admin review.
// One per student, enforced at submission time.
type Application struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StudentID uint `gorm:"index;column:student_id" json:"student_id"`

	PreferredBlock    string `gorm:"column:preferred_block;size:50" json:"preferred_block,omitempty"`
	PreferredRoomType string `gorm:"column:preferred_room_type;size:50" json:"preferred_room_type,omitempty"`
	Reason            string `gorm:"type:text" json:"reason,omitempty"`

	Status     string     `gorm:"size:20;default:pending" json:"status"` // pending | approved | rejected
	AppliedAt  time.Time  `gorm:"column:applied_at;autoCreateTime" json:"applied_at"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	AdminNotes string     `gorm:"column:admin_notes;type:text" json:"admin_notes,omitempty"`

	Student User `gorm:"belongsTo;foreignKey:StudentID;references:ID" json:"student,omitempty"`
}
