package models

import "time"

const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// A room is unique per (block, floor, room_number).
	BlockID    uint   `gorm:"column:block_id;uniqueIndex:uniq_room" json:"block_id"`
	Floor      int    `gorm:"uniqueIndex:uniq_room" json:"floor"`
	RoomNumber string `gorm:"column:room_number;uniqueIndex:uniq_room;size:20" json:"room_number"`

	Capacity         int     `gorm:"default:2" json:"capacity"`
	CurrentOccupancy int     `gorm:"column:current_occupancy;default:0" json:"current_occupancy"`
	Status           string  `gorm:"size:20;default:available" json:"status"` // available | occupied | maintenance
	RoomType         string  `gorm:"column:room_type;size:50" json:"room_type,omitempty"`
	Price            float64 `json:"price"`

	Block Block `gorm:"foreignKey:BlockID" json:"block,omitempty"`
}
