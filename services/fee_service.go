// services/fee_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hostel-backend/metrics"
	"hostel-backend/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FeeService struct {
	DB *gorm.DB
}

func NewFeeService(db *gorm.DB) *FeeService {
	return &FeeService{DB: db}
}

// ListByStudent returns a student's fees newest-due-first. Pending fees past
// their due date are reported as overdue; the stored status stays pending.
func (s *FeeService) ListByStudent(studentID uint) ([]models.Fee, error) {
	var fees []models.Fee
	if err := s.DB.Where("student_id = ?", studentID).
		Order("due_date DESC").
		Find(&fees).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve fees: %w", err)
	}

	now := time.Now().UTC()
	for i := range fees {
		fees[i].Status = fees[i].EffectiveStatus(now)
	}
	return fees, nil
}

// PendingByStudent returns the student's unpaid fees (overdue included).
func (s *FeeService) PendingByStudent(studentID uint) ([]models.Fee, error) {
	var fees []models.Fee
	if err := s.DB.Where("student_id = ? AND status = ?", studentID, models.FeePending).
		Order("due_date ASC").
		Find(&fees).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve pending fees: %w", err)
	}

	now := time.Now().UTC()
	for i := range fees {
		fees[i].Status = fees[i].EffectiveStatus(now)
	}
	return fees, nil
}

func (s *FeeService) ListAll() ([]models.Fee, error) {
	var fees []models.Fee
	if err := s.DB.Preload("Student").Order("due_date DESC").Find(&fees).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve fees: %w", err)
	}

	now := time.Now().UTC()
	for i := range fees {
		fees[i].Status = fees[i].EffectiveStatus(now)
	}
	return fees, nil
}

// RecordPayment marks a pending fee paid, generating a receipt number.
// Optional metadata (bank ref, teller, ...) is stored as JSON.
func (s *FeeService) RecordPayment(feeID uint, paymentMethod string, meta map[string]interface{}) (*models.Fee, error) {
	var fee models.Fee
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&fee, feeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("fee %d: %w", feeID, ErrNotFound)
			}
			return err
		}
		if fee.Status == models.FeePaid {
			return validationf("fee is already paid")
		}

		now := time.Now().UTC()
		receipt := "RCPT-" + strings.ToUpper(uuid.NewString()[:8])

		updates := map[string]interface{}{
			"status":         models.FeePaid,
			"paid_date":      now,
			"payment_method": paymentMethod,
			"receipt_number": receipt,
		}
		if len(meta) > 0 {
			raw, mErr := json.Marshal(meta)
			if mErr != nil {
				return fmt.Errorf("failed to encode payment meta: %w", mErr)
			}
			updates["payment_meta"] = datatypes.JSON(raw)
		}

		if err := tx.Model(&fee).Updates(updates).Error; err != nil {
			return err
		}
		fee.Status = models.FeePaid
		fee.PaidDate = &now
		fee.PaymentMethod = paymentMethod
		fee.ReceiptNumber = &receipt
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.FeesPaid.Inc()
	return &fee, nil
}

// BackfillHostelFees creates the missing hostel fee for every active
// allocation whose student has no pending one, priced from the room.
// Returns (created, skipped).
func (s *FeeService) BackfillHostelFees() (int, int, error) {
	var allocations []models.Allocation
	if err := s.DB.Preload("Room").Preload("Student").
		Where("status = ?", models.AllocationActive).
		Find(&allocations).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to load active allocations: %w", err)
	}

	created, skipped := 0, 0
	for _, allocation := range allocations {
		var pending int64
		if err := s.DB.Model(&models.Fee{}).
			Where("student_id = ? AND fee_type = ? AND status = ?",
				allocation.StudentID, models.FeeTypeHostel, models.FeePending).
			Count(&pending).Error; err != nil {
			return created, skipped, err
		}
		if pending > 0 {
			skipped++
			continue
		}

		amount := allocation.Room.Price
		if amount <= 0 {
			amount = DefaultHostelFee
		}
		fee := models.Fee{
			StudentID: allocation.StudentID,
			Amount:    amount,
			FeeType:   models.FeeTypeHostel,
			DueDate:   time.Now().UTC().Add(HostelFeeDueIn),
			Status:    models.FeePending,
		}
		if err := s.DB.Create(&fee).Error; err != nil {
			return created, skipped, fmt.Errorf("failed to create fee for student %d: %w", allocation.StudentID, err)
		}
		created++
		log.Printf("Created hostel fee for %s - amount: %.0f", allocation.Student.Username, amount)
	}

	return created, skipped, nil
}
