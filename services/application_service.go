package services

import (
	"errors"
	"fmt"

	"hostel-backend/models"

	"gorm.io/gorm"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// Submit files a housing application for a student. One application per
// student, checked at creation time.
func (s *ApplicationService) Submit(studentID uint, preferredBlock, preferredRoomType, reason string) (*models.Application, error) {
	var existing int64
	if err := s.DB.Model(&models.Application{}).
		Where("student_id = ?", studentID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, validationf("you have already submitted an application")
	}

	application := models.Application{
		StudentID:         studentID,
		PreferredBlock:    preferredBlock,
		PreferredRoomType: preferredRoomType,
		Reason:            reason,
		Status:            models.ApplicationPending,
	}
	if err := s.DB.Create(&application).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &application, nil
}

// GetByStudent returns the student's (single) application or ErrNotFound.
func (s *ApplicationService) GetByStudent(studentID uint) (*models.Application, error) {
	var application models.Application
	err := s.DB.Where("student_id = ?", studentID).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

// ListAll returns every application newest-first with the student loaded,
// optionally filtered by status.
func (s *ApplicationService) ListAll(status string) ([]models.Application, error) {
	q := s.DB.Preload("Student").Order("applied_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Application
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve applications: %w", err)
	}
	return list, nil
}
