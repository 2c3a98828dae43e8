package models

import "time"

// Block is a gender-restricted residential wing containing rooms.
type Block struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:50" json:"name"`
	Gender      string `gorm:"size:10" json:"gender"` // 'male' or 'female'
	Description string `gorm:"type:text" json:"description,omitempty"`

	Rooms []Room `gorm:"foreignKey:BlockID" json:"rooms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
