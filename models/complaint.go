package models

import "time"

const (
	ComplaintOpen       = "open"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
	ComplaintClosed     = "closed"
)

// Complaint is a student-submitted maintenance/service ticket triaged by admins.
type Complaint struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StudentID uint `gorm:"index;column:student_id" json:"student_id"`

	Category    string `gorm:"size:50" json:"category"` // 'electricity', 'water', 'cleaning', ...
	Title       string `gorm:"size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Status        string     `gorm:"size:20;default:open" json:"status"` // open | in_progress | resolved | closed
	SubmittedAt   time.Time  `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`
	ResolvedAt    *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	AdminResponse string     `gorm:"column:admin_response;type:text" json:"admin_response,omitempty"`
	AssignedTo    string     `gorm:"column:assigned_to;size:100" json:"assigned_to,omitempty"`

	Student User `gorm:"belongsTo;foreignKey:StudentID;references:ID" json:"student,omitempty"`
}
