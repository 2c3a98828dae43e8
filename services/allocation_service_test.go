package services

import (
	"testing"
	"time"

	"hostel-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveAllocatesRoomAndEmitsFee(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "101", 2, 1, "AC", 5000)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "Block A", "AC")

	before := time.Now().UTC()
	allocation, err := svc.Approve(application.ID, room.ID, "looks fine")
	require.NoError(t, err)

	assert.Equal(t, models.AllocationActive, allocation.Status)
	assert.Equal(t, student.ID, allocation.StudentID)
	assert.Equal(t, room.ID, allocation.RoomID)
	require.NotNil(t, allocation.CheckInDate)

	got := reloadRoom(t, db, room.ID)
	assert.Equal(t, 2, got.CurrentOccupancy)
	assert.Equal(t, models.RoomOccupied, got.Status, "room at capacity must read occupied")

	var updated models.Application
	require.NoError(t, db.First(&updated, application.ID).Error)
	assert.Equal(t, models.ApplicationApproved, updated.Status)
	assert.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, "looks fine", updated.AdminNotes)

	var fee models.Fee
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&fee).Error)
	assert.Equal(t, models.FeeTypeHostel, fee.FeeType)
	assert.Equal(t, float64(5000), fee.Amount)
	assert.Equal(t, models.FeePending, fee.Status)
	assert.WithinDuration(t, before.Add(HostelFeeDueIn), fee.DueDate, time.Minute)
}

func TestApproveKeepsRoomAvailableBelowCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "103", 3, 0, "AC", 6000)
	student := createStudent(t, db, "anil", "male")
	application := createApplication(t, db, student, "", "")

	_, err := svc.Approve(application.ID, room.ID, "")
	require.NoError(t, err)

	got := reloadRoom(t, db, room.ID)
	assert.Equal(t, 1, got.CurrentOccupancy)
	assert.Equal(t, models.RoomAvailable, got.Status)
}

func TestApproveUsesDefaultFeeWhenRoomUnpriced(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "104", 2, 0, "Non-AC", 0)
	student := createStudent(t, db, "kiran", "male")
	application := createApplication(t, db, student, "", "")

	_, err := svc.Approve(application.ID, room.ID, "")
	require.NoError(t, err)

	var fee models.Fee
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&fee).Error)
	assert.Equal(t, float64(DefaultHostelFee), fee.Amount)
}

func TestApproveGenderMismatchLeavesEverythingUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "101", 2, 0, "AC", 5000)
	student := createStudent(t, db, "meena", "female")
	application := createApplication(t, db, student, "", "")

	_, err := svc.Approve(application.ID, room.ID, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "gender")

	got := reloadRoom(t, db, room.ID)
	assert.Equal(t, 0, got.CurrentOccupancy)

	var unchanged models.Application
	require.NoError(t, db.First(&unchanged, application.ID).Error)
	assert.Equal(t, models.ApplicationPending, unchanged.Status)

	var fees int64
	db.Model(&models.Fee{}).Count(&fees)
	assert.Zero(t, fees)
	var allocations int64
	db.Model(&models.Allocation{}).Count(&allocations)
	assert.Zero(t, allocations)
}

func TestApproveRejectsFullRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "101", 2, 2, "AC", 5000)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	_, err := svc.Approve(application.ID, room.ID, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "full")
}

func TestApproveRejectsDuplicateActiveAllocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	first := createRoom(t, db, block, "101", 2, 0, "AC", 5000)
	second := createRoom(t, db, block, "102", 2, 0, "AC", 5000)
	student := createStudent(t, db, "ravi", "male")

	application := createApplication(t, db, student, "", "")
	_, err := svc.Approve(application.ID, first.ID, "")
	require.NoError(t, err)

	// A second pending application for the same student must not allocate.
	again := createApplication(t, db, student, "", "")
	_, err = svc.Approve(again.ID, second.ID, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "active allocation")

	got := reloadRoom(t, db, second.ID)
	assert.Equal(t, 0, got.CurrentOccupancy)
}

func TestApproveRejectsTypeMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "102", 2, 0, "Non-AC", 3500)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "AC")

	_, err := svc.Approve(application.ID, room.ID, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "type")
}

func TestApproveRequiresRoomSelection(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	_, err := svc.Approve(1, 0, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestApproveNonPendingApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "101", 2, 0, "AC", 5000)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")
	require.NoError(t, db.Model(application).Update("status", models.ApplicationRejected).Error)

	_, err := svc.Approve(application.ID, room.ID, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestApproveUnknownApplicationOrRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	_, err := svc.Approve(999, 1, "")
	assert.ErrorIs(t, err, ErrNotFound)

	createBlock(t, db, "Block A", "male")
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	_, err = svc.Approve(application.ID, 999, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAutoAllocatePicksDeterministically(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	blockA := createBlock(t, db, "Block A", "male")
	blockB := createBlock(t, db, "Block B", "female")
	createRoom(t, db, blockA, "101", 2, 1, "AC", 5000)
	createRoom(t, db, blockA, "103", 3, 0, "AC", 6000)
	createRoom(t, db, blockA, "102", 2, 0, "Non-AC", 3500)
	createRoom(t, db, blockB, "101", 2, 0, "AC", 5200)

	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "Block A", "AC")

	allocation, err := svc.AutoAllocate(application.ID)
	require.NoError(t, err)

	// Lowest occupancy among Block A AC rooms is 103 at 0.
	var chosen models.Room
	require.NoError(t, db.First(&chosen, allocation.RoomID).Error)
	assert.Equal(t, "103", chosen.RoomNumber)
	assert.Equal(t, 1, chosen.CurrentOccupancy)

	var updated models.Application
	require.NoError(t, db.First(&updated, application.ID).Error)
	assert.Equal(t, models.ApplicationApproved, updated.Status)
	assert.Contains(t, updated.AdminNotes, "Block A")
	assert.Contains(t, updated.AdminNotes, "103")
}

func TestAutoAllocateNoCandidate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block B", "female")
	createRoom(t, db, block, "101", 2, 0, "AC", 5200)

	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	_, err := svc.AutoAllocate(application.ID)
	assert.ErrorIs(t, err, ErrNoAvailableRoom)

	var unchanged models.Application
	require.NoError(t, db.First(&unchanged, application.ID).Error)
	assert.Equal(t, models.ApplicationPending, unchanged.Status)
}

func TestReject(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	rejected, err := svc.Reject(application.ID, "no rooms this term")
	require.NoError(t, err)
	assert.Equal(t, application.ID, rejected.ID)

	var updated models.Application
	require.NoError(t, db.First(&updated, application.ID).Error)
	assert.Equal(t, models.ApplicationRejected, updated.Status)
	assert.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, "no rooms this term", updated.AdminNotes)

	var allocations int64
	db.Model(&models.Allocation{}).Count(&allocations)
	assert.Zero(t, allocations)
}
