package services

import (
	"testing"
	"time"

	"hostel-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInRecordsDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "101", 2, 0, "AC", 5000)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	allocation, err := svc.Approve(application.ID, room.ID, "")
	require.NoError(t, err)

	moveIn := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	updated, err := svc.CheckIn(allocation.ID, &moveIn)
	require.NoError(t, err)
	require.NotNil(t, updated.CheckInDate)
	assert.True(t, updated.CheckInDate.Equal(moveIn))
	assert.Equal(t, models.AllocationActive, updated.Status, "check-in never changes status")
}

func TestCheckInUnknownAllocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	_, err := svc.CheckIn(42, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckOutReleasesCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "201", 3, 2, "AC", 6000)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	allocation, err := svc.Approve(application.ID, room.ID, "")
	require.NoError(t, err)

	// Room is now full: 3/3, occupied.
	full := reloadRoom(t, db, room.ID)
	require.Equal(t, 3, full.CurrentOccupancy)
	require.Equal(t, models.RoomOccupied, full.Status)

	out, err := svc.CheckOut(allocation.ID, nil, "Semester ended", "")
	require.NoError(t, err)
	assert.Equal(t, models.AllocationCheckedOut, out.Status)
	require.NotNil(t, out.CheckOutDate)
	assert.Equal(t, "Semester ended", out.CheckoutReason)

	released := reloadRoom(t, db, room.ID)
	assert.Equal(t, 2, released.CurrentOccupancy)
	assert.Equal(t, models.RoomAvailable, released.Status, "occupancy below capacity must read available")
}

func TestCheckOutComposesOtherReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "101", 2, 0, "AC", 5000)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	allocation, err := svc.Approve(application.ID, room.ID, "")
	require.NoError(t, err)

	out, err := svc.CheckOut(allocation.ID, nil, "Other", "moving closer to campus")
	require.NoError(t, err)
	assert.Equal(t, "Other: moving closer to campus", out.CheckoutReason)
}

func TestCheckOutOtherWithoutTextKeptVerbatim(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "101", 2, 0, "AC", 5000)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	allocation, err := svc.Approve(application.ID, room.ID, "")
	require.NoError(t, err)

	out, err := svc.CheckOut(allocation.ID, nil, "Other", "")
	require.NoError(t, err)
	assert.Equal(t, "Other", out.CheckoutReason)
}

func TestDoubleCheckOutRefused(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "101", 2, 1, "AC", 5000)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	allocation, err := svc.Approve(application.ID, room.ID, "")
	require.NoError(t, err)

	_, err = svc.CheckOut(allocation.ID, nil, "Semester ended", "")
	require.NoError(t, err)

	occupancyAfterFirst := reloadRoom(t, db, room.ID).CurrentOccupancy

	_, err = svc.CheckOut(allocation.ID, nil, "Semester ended", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	assert.Equal(t, occupancyAfterFirst, reloadRoom(t, db, room.ID).CurrentOccupancy,
		"a second checkout must not decrement occupancy again")
}

func TestCheckOutUnknownAllocation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	_, err := svc.CheckOut(42, nil, "Semester ended", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckOutWithExplicitDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAllocationService(db)

	block := createBlock(t, db, "Block A", "male")
	room := createRoom(t, db, block, "101", 2, 0, "AC", 5000)
	student := createStudent(t, db, "ravi", "male")
	application := createApplication(t, db, student, "", "")

	allocation, err := svc.Approve(application.ID, room.ID, "")
	require.NoError(t, err)

	moveOut := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	out, err := svc.CheckOut(allocation.ID, &moveOut, "Graduated", "")
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutDate)
	assert.True(t, out.CheckOutDate.Equal(moveOut))
}
