package services

import (
	"testing"

	"hostel-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A fresh connection to :memory: is a fresh database; pin the pool to a
	// single connection so every query sees the same one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Block{},
		&models.Room{},
		&models.Application{},
		&models.Allocation{},
		&models.Complaint{},
		&models.Fee{},
	))
	return db
}

func createStudent(t *testing.T, db *gorm.DB, username, gender string) *models.User {
	t.Helper()
	sid := "S-" + username
	user := models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "x",
		Role:      models.RoleStudent,
		Gender:    gender,
		FullName:  "Student " + username,
		StudentID: &sid,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createBlock(t *testing.T, db *gorm.DB, name, gender string) *models.Block {
	t.Helper()
	block := models.Block{Name: name, Gender: gender}
	require.NoError(t, db.Create(&block).Error)
	return &block
}

func createRoom(t *testing.T, db *gorm.DB, block *models.Block, number string, capacity, occupancy int, roomType string, price float64) *models.Room {
	t.Helper()
	status := models.RoomAvailable
	if occupancy >= capacity {
		status = models.RoomOccupied
	}
	room := models.Room{
		BlockID:          block.ID,
		Floor:            1,
		RoomNumber:       number,
		Capacity:         capacity,
		CurrentOccupancy: occupancy,
		Status:           status,
		RoomType:         roomType,
		Price:            price,
	}
	require.NoError(t, db.Create(&room).Error)
	room.Block = *block
	return &room
}

func createApplication(t *testing.T, db *gorm.DB, student *models.User, preferredBlock, preferredType string) *models.Application {
	t.Helper()
	application := models.Application{
		StudentID:         student.ID,
		PreferredBlock:    preferredBlock,
		PreferredRoomType: preferredType,
		Status:            models.ApplicationPending,
	}
	require.NoError(t, db.Create(&application).Error)
	return &application
}

func reloadRoom(t *testing.T, db *gorm.DB, id uint) *models.Room {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, id).Error)
	return &room
}
