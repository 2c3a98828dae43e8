package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"hostel-backend/config"
	"hostel-backend/middleware"
	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Get Rooms (GET /api/rooms) — admin
//    ?block_id= filters by block, ?available=true keeps
//    only rooms with free capacity (the approval form).
// ----------------------------------------------------

func GetRooms(c *gin.Context) {
	q := config.DB.Preload("Block")
	if blockID := c.Query("block_id"); blockID != "" {
		q = q.Where("block_id = ?", blockID)
	}
	if c.Query("available") == "true" {
		q = q.Where("current_occupancy < capacity")
	}

	var rooms []models.Room
	q.Order("block_id ASC, floor ASC, room_number ASC").Find(&rooms)

	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// 2. Get Open Rooms (GET /api/rooms/open) — student view,
//    restricted to blocks matching the student's gender.
// ----------------------------------------------------

func GetOpenRooms(c *gin.Context) {
	var actor models.User
	if err := config.DB.First(&actor, middleware.ActorID(c)).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "unknown user")
		return
	}

	blocksQ := config.DB.Preload("Rooms")
	if actor.Gender != "" {
		blocksQ = blocksQ.Where("gender = ?", actor.Gender)
	}

	var blocks []models.Block
	blocksQ.Find(&blocks)

	c.JSON(http.StatusOK, blocks)
}

// ----------------------------------------------------
// 3. Create Room (POST /api/rooms) — admin
// ----------------------------------------------------

func CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "room number is required")
		return
	}
	if room.BlockID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "block is required")
		return
	}

	var block models.Block
	if err := config.DB.First(&block, room.BlockID).Error; err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid block")
		return
	}

	if room.Capacity <= 0 {
		room.Capacity = 2
	}
	room.CurrentOccupancy = 0
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}

	if result := config.DB.Create(&room); result.Error != nil {
		// Composite unique index on (block, floor, room_number)
		if isDuplicateKey(result.Error) {
			utils.JSONError(c, http.StatusConflict,
				fmt.Sprintf("room %s already exists on floor %d of %s", room.RoomNumber, room.Floor, block.Name))
			return
		}
		log.Printf("❌ DB ERROR: %v", result.Error)
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// 4. Update Room (PATCH /api/rooms/:id) — admin
// ----------------------------------------------------

func UpdateRoom(c *gin.Context) {
	id := c.Param("id")
	var updateData map[string]interface{}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	// Occupancy belongs to the allocation engine; never patch it here.
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "current_occupancy")

	if err := config.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		log.Printf("❌ Update Error for Room %s: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room updated"})
}

// ----------------------------------------------------
// 5. Delete Room (DELETE /api/rooms/:id) — admin
// ----------------------------------------------------

func DeleteRoom(c *gin.Context) {
	id := c.Param("id")

	var occupied int64
	config.DB.Model(&models.Allocation{}).
		Where("room_id = ? AND status = ?", id, models.AllocationActive).
		Count(&occupied)
	if occupied > 0 {
		utils.JSONError(c, http.StatusConflict, "room has active allocations")
		return
	}

	result := config.DB.Where("id = ?", id).Delete(&models.Room{})
	if result.Error != nil {
		log.Printf("❌ DB Error during deletion (ID: %s): %v", id, result.Error)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room with ID %s not found", id))
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}
