package services

import (
	"errors"
	"fmt"
	"time"

	"hostel-backend/models"

	"gorm.io/gorm"
)

type ComplaintService struct {
	DB *gorm.DB
}

func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{DB: db}
}

func (s *ComplaintService) Submit(studentID uint, category, title, description string) (*models.Complaint, error) {
	complaint := models.Complaint{
		StudentID:   studentID,
		Category:    category,
		Title:       title,
		Description: description,
		Status:      models.ComplaintOpen,
	}
	if err := s.DB.Create(&complaint).Error; err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return &complaint, nil
}

func (s *ComplaintService) ListByStudent(studentID uint, limit int) ([]models.Complaint, error) {
	q := s.DB.Where("student_id = ?", studentID).Order("submitted_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var list []models.Complaint
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve complaints: %w", err)
	}
	return list, nil
}

func (s *ComplaintService) ListAll() ([]models.Complaint, error) {
	var list []models.Complaint
	if err := s.DB.Preload("Student").Order("submitted_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve complaints: %w", err)
	}
	return list, nil
}

// Update triages a complaint: status, response and assignee. resolved_at is
// stamped when the status transitions to resolved.
func (s *ComplaintService) Update(complaintID uint, status, adminResponse, assignedTo string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.First(&complaint, complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("complaint %d: %w", complaintID, ErrNotFound)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if status != "" {
		updates["status"] = status
		if status == models.ComplaintResolved && complaint.ResolvedAt == nil {
			updates["resolved_at"] = time.Now().UTC()
		}
	}
	if adminResponse != "" {
		updates["admin_response"] = adminResponse
	}
	if assignedTo != "" {
		updates["assigned_to"] = assignedTo
	}
	if len(updates) == 0 {
		return &complaint, nil
	}

	if err := s.DB.Model(&complaint).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.First(&complaint, complaintID).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}
