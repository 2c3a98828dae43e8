package models

import (
	"time"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username string `gorm:"uniqueIndex;size:80" json:"username"`
	Email    string `gorm:"uniqueIndex;size:120" json:"email"`
	Password string `gorm:"size:255" json:"-"` // store hashed password, never return in JSON

	Role     string `gorm:"size:20" json:"role"`   // 'student' or 'admin', fixed at registration
	Gender   string `gorm:"size:10" json:"gender"` // 'male', 'female' or empty
	FullName string `gorm:"size:100;column:full_name" json:"full_name"`

	// StudentID is the institutional roll number, unique when present.
	// Nullable so admins (who have none) don't collide on the index.
	StudentID *string `gorm:"uniqueIndex;size:50;column:student_id" json:"student_id,omitempty"`
	Phone     string  `gorm:"size:20" json:"phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
