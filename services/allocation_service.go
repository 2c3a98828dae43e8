// services/allocation_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hostel-backend/metrics"
	"hostel-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultHostelFee is charged when the allocated room has no price set.
const DefaultHostelFee = 5000

// HostelFeeDueIn is how long after allocation the hostel fee falls due.
const HostelFeeDueIn = 30 * 24 * time.Hour

// AllocationService turns pending applications into allocations and drives
// the check-in/check-out lifecycle. It is the only writer of room occupancy.
type AllocationService struct {
	DB *gorm.DB
}

func NewAllocationService(db *gorm.DB) *AllocationService {
	return &AllocationService{DB: db}
}

// lockForUpdate takes a row lock where the dialect supports it. SQLite (used
// in tests) has no FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Approve allocates the admin-chosen room to a pending application.
// All effects (allocation, occupancy, application review, fee) commit as one
// transaction; any precondition failure leaves everything untouched.
func (s *AllocationService) Approve(applicationID, roomID uint, notes string) (*models.Allocation, error) {
	if roomID == 0 {
		return nil, validationf("please select a room")
	}

	var allocation *models.Allocation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		application, err := s.pendingApplication(tx, applicationID)
		if err != nil {
			return err
		}

		var room models.Room
		if err := lockForUpdate(tx).Preload("Block").First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room %d: %w", roomID, ErrNotFound)
			}
			return err
		}

		if err := s.checkEligibility(application, &room); err != nil {
			return err
		}

		allocation, err = s.allocate(tx, application, &room, notes)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.AllocationsApproved.Inc()
	return allocation, nil
}

// AutoAllocate selects the best room for a pending application instead of an
// admin-chosen one, then proceeds exactly as Approve. Fails with
// ErrNoAvailableRoom when no candidate passes the gender/block/type filters;
// the caller falls back to manual selection.
func (s *AllocationService) AutoAllocate(applicationID uint) (*models.Allocation, error) {
	var allocation *models.Allocation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		application, err := s.pendingApplication(tx, applicationID)
		if err != nil {
			return err
		}

		var candidates []models.Room
		if err := lockForUpdate(tx).Preload("Block").
			Where("current_occupancy < capacity").
			Find(&candidates).Error; err != nil {
			return err
		}

		room := SelectRoom(candidates,
			application.Student.Gender,
			application.PreferredBlock,
			application.PreferredRoomType,
		)
		if room == nil {
			return ErrNoAvailableRoom
		}

		notes := fmt.Sprintf("Auto-allocated to %s room %s (floor %d)",
			room.Block.Name, room.RoomNumber, room.Floor)

		allocation, err = s.allocate(tx, application, room, notes)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.AllocationsAutoAssigned.Inc()
	return allocation, nil
}

// Reject closes a pending application with review notes. No room or fee side
// effects.
func (s *AllocationService) Reject(applicationID uint, notes string) (*models.Application, error) {
	var application *models.Application
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		application, err = s.pendingApplication(tx, applicationID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		return tx.Model(application).Updates(map[string]interface{}{
			"status":      models.ApplicationRejected,
			"reviewed_at": now,
			"admin_notes": notes,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return application, nil
}

// CheckIn records (or corrects) the check-in date on an allocation. The
// allocation is already active from creation; status is untouched.
func (s *AllocationService) CheckIn(allocationID uint, date *time.Time) (*models.Allocation, error) {
	var allocation models.Allocation
	if err := s.DB.First(&allocation, allocationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("allocation %d: %w", allocationID, ErrNotFound)
		}
		return nil, err
	}

	when := time.Now().UTC()
	if date != nil {
		when = *date
	}
	if err := s.DB.Model(&allocation).Update("check_in_date", when).Error; err != nil {
		return nil, err
	}
	allocation.CheckInDate = &when
	return &allocation, nil
}

// CheckOut terminates an active allocation and releases its room capacity.
// Checking out an already-checked-out allocation is refused; the unguarded
// double decrement would corrupt occupancy.
func (s *AllocationService) CheckOut(allocationID uint, date *time.Time, reason, reasonOther string) (*models.Allocation, error) {
	var allocation models.Allocation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&allocation, allocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("allocation %d: %w", allocationID, ErrNotFound)
			}
			return err
		}
		if allocation.Status != models.AllocationActive {
			return validationf("allocation is already checked out")
		}

		when := time.Now().UTC()
		if date != nil {
			when = *date
		}

		reasonText := strings.TrimSpace(reason)
		if strings.EqualFold(reasonText, "Other") && strings.TrimSpace(reasonOther) != "" {
			reasonText = "Other: " + strings.TrimSpace(reasonOther)
		}

		if err := tx.Model(&allocation).Updates(map[string]interface{}{
			"status":          models.AllocationCheckedOut,
			"check_out_date":  when,
			"checkout_reason": reasonText,
		}).Error; err != nil {
			return err
		}
		allocation.Status = models.AllocationCheckedOut
		allocation.CheckOutDate = &when
		allocation.CheckoutReason = reasonText

		// Guarded decrement floors occupancy at 0.
		if err := tx.Model(&models.Room{}).
			Where("id = ? AND current_occupancy > 0", allocation.RoomID).
			Update("current_occupancy", gorm.Expr("current_occupancy - 1")).Error; err != nil {
			return err
		}

		var room models.Room
		if err := tx.First(&room, allocation.RoomID).Error; err != nil {
			return err
		}
		if room.CurrentOccupancy < room.Capacity && room.Status != models.RoomAvailable {
			if err := tx.Model(&room).Update("status", models.RoomAvailable).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.Checkouts.Inc()
	return &allocation, nil
}

// ListAllocations returns allocations with student and room/block loaded,
// optionally filtered by status.
func (s *AllocationService) ListAllocations(status string) ([]models.Allocation, error) {
	q := s.DB.Preload("Student").Preload("Room").Preload("Room.Block").
		Order("allocated_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Allocation
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve allocations: %w", err)
	}
	return list, nil
}

// GetByStudent returns the student's allocation (active preferred) or
// ErrNotFound.
func (s *AllocationService) GetByStudent(studentID uint) (*models.Allocation, error) {
	var allocation models.Allocation
	err := s.DB.Preload("Room").Preload("Room.Block").
		Where("student_id = ?", studentID).
		Order("status ASC"). // 'active' sorts before 'checked_out'
		First(&allocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &allocation, nil
}

// pendingApplication loads an application with its student and verifies it is
// still pending review.
func (s *AllocationService) pendingApplication(tx *gorm.DB, applicationID uint) (*models.Application, error) {
	var application models.Application
	if err := tx.Preload("Student").First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
		}
		return nil, err
	}
	if application.Status != models.ApplicationPending {
		return nil, validationf("application is not pending (status: %s)", application.Status)
	}
	return &application, nil
}

// checkEligibility validates an admin-chosen room against the application.
func (s *AllocationService) checkEligibility(application *models.Application, room *models.Room) error {
	if !genderCompatible(application.Student.Gender, room.Block.Gender) {
		return validationf("room gender does not match student gender")
	}
	if room.CurrentOccupancy >= room.Capacity {
		return validationf("room %s is full", room.RoomNumber)
	}
	if !typeCompatible(application.PreferredRoomType, room.RoomType) {
		return validationf("room type %s does not match preferred type %s",
			room.RoomType, application.PreferredRoomType)
	}
	return nil
}

// allocate applies the shared approval effects inside the caller's
// transaction: allocation row, occupancy bump, application review stamp and
// the hostel fee.
func (s *AllocationService) allocate(tx *gorm.DB, application *models.Application, room *models.Room, notes string) (*models.Allocation, error) {
	var active int64
	if err := lockForUpdate(tx).Model(&models.Allocation{}).
		Where("student_id = ? AND status = ?", application.StudentID, models.AllocationActive).
		Count(&active).Error; err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, validationf("student already has an active allocation")
	}

	now := time.Now().UTC()
	allocation := models.Allocation{
		StudentID:   application.StudentID,
		RoomID:      room.ID,
		Status:      models.AllocationActive,
		CheckInDate: &now,
	}
	if err := tx.Create(&allocation).Error; err != nil {
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}

	// Guarded increment: the WHERE re-checks capacity at write time so a
	// concurrent approval of the last slot surfaces as a conflict instead of
	// overbooking.
	res := tx.Model(&models.Room{}).
		Where("id = ? AND current_occupancy < capacity", room.ID).
		Update("current_occupancy", gorm.Expr("current_occupancy + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("room %s filled concurrently: %w", room.RoomNumber, ErrConflict)
	}
	room.CurrentOccupancy++

	if room.CurrentOccupancy >= room.Capacity {
		if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("status", models.RoomOccupied).Error; err != nil {
			return nil, err
		}
		room.Status = models.RoomOccupied
	}

	if err := tx.Model(application).Updates(map[string]interface{}{
		"status":      models.ApplicationApproved,
		"reviewed_at": now,
		"admin_notes": notes,
	}).Error; err != nil {
		return nil, err
	}

	amount := room.Price
	if amount <= 0 {
		amount = DefaultHostelFee
	}
	fee := models.Fee{
		StudentID: application.StudentID,
		Amount:    amount,
		FeeType:   models.FeeTypeHostel,
		DueDate:   now.Add(HostelFeeDueIn),
		Status:    models.FeePending,
	}
	if err := tx.Create(&fee).Error; err != nil {
		return nil, fmt.Errorf("failed to create hostel fee: %w", err)
	}

	allocation.Room = *room
	return &allocation, nil
}
