// services/report_service.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"hostel-backend/models"

	"gorm.io/gorm"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type DashboardStats struct {
	TotalStudents       int64                `json:"total_students"`
	TotalRooms          int64                `json:"total_rooms"`
	AvailableRooms      int64                `json:"available_rooms"`
	PendingApplications int64                `json:"pending_applications"`
	OpenComplaints      int64                `json:"open_complaints"`
	RecentApplications  []models.Application `json:"recent_applications"`
}

// Dashboard aggregates the admin landing-page counters.
func (s *ReportService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalStudents, s.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent)},
		{&stats.TotalRooms, s.DB.Model(&models.Room{})},
		{&stats.AvailableRooms, s.DB.Model(&models.Room{}).Where("status = ?", models.RoomAvailable)},
		{&stats.PendingApplications, s.DB.Model(&models.Application{}).Where("status = ?", models.ApplicationPending)},
		{&stats.OpenComplaints, s.DB.Model(&models.Complaint{}).Where("status = ?", models.ComplaintOpen)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("dashboard count failed: %w", err)
		}
	}

	if err := s.DB.Preload("Student").
		Order("applied_at DESC").Limit(5).
		Find(&stats.RecentApplications).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent applications: %w", err)
	}
	return stats, nil
}

type OccupancyReport struct {
	TotalStudents  int64 `json:"total_students"`
	TotalRooms     int64 `json:"total_rooms"`
	OccupiedRooms  int64 `json:"occupied_rooms"`
	AvailableRooms int64 `json:"available_rooms"`
}

// Occupancy reports room utilisation; a room counts as occupied once anyone
// lives in it, not only when full.
func (s *ReportService) Occupancy() (*OccupancyReport, error) {
	report := &OccupancyReport{}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&report.TotalStudents, s.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent)},
		{&report.TotalRooms, s.DB.Model(&models.Room{})},
		{&report.OccupiedRooms, s.DB.Model(&models.Room{}).Where("current_occupancy > 0")},
		{&report.AvailableRooms, s.DB.Model(&models.Room{}).Where("status = ?", models.RoomAvailable)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("occupancy count failed: %w", err)
		}
	}
	return report, nil
}

type StudentDashboard struct {
	Application *models.Application `json:"application,omitempty"`
	Allocation  *models.Allocation  `json:"allocation,omitempty"`
	Complaints  []models.Complaint  `json:"complaints"`
	PendingFees []models.Fee        `json:"pending_fees"`
}

// DashboardForStudent assembles the student landing page: their application,
// allocation, five most recent complaints and unpaid fees.
func (s *ReportService) DashboardForStudent(studentID uint) (*StudentDashboard, error) {
	dash := &StudentDashboard{
		Complaints:  []models.Complaint{},
		PendingFees: []models.Fee{},
	}

	var application models.Application
	if err := s.DB.Where("student_id = ?", studentID).First(&application).Error; err == nil {
		dash.Application = &application
	}

	var allocation models.Allocation
	if err := s.DB.Preload("Room").Preload("Room.Block").
		Where("student_id = ?", studentID).
		Order("allocated_at DESC").
		First(&allocation).Error; err == nil {
		dash.Allocation = &allocation
	}

	if err := s.DB.Where("student_id = ?", studentID).
		Order("submitted_at DESC").Limit(5).
		Find(&dash.Complaints).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Where("student_id = ? AND status = ?", studentID, models.FeePending).
		Order("due_date ASC").
		Find(&dash.PendingFees).Error; err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range dash.PendingFees {
		dash.PendingFees[i].Status = dash.PendingFees[i].EffectiveStatus(now)
	}

	return dash, nil
}

const csvTimeLayout = "2006-01-02 15:04:05"

func csvTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(csvTimeLayout)
}

func csvTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return csvTime(*t)
}

// ExportStudentsCSV streams the student roster.
func (s *ReportService) ExportStudentsCSV(w io.Writer) error {
	var students []models.User
	if err := s.DB.Where("role = ?", models.RoleStudent).
		Order("created_at ASC").
		Find(&students).Error; err != nil {
		return fmt.Errorf("failed to load students: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"student_id", "full_name", "username", "email", "gender", "phone", "created_at"}); err != nil {
		return err
	}
	for _, student := range students {
		sid := ""
		if student.StudentID != nil {
			sid = *student.StudentID
		}
		if err := cw.Write([]string{
			sid,
			student.FullName,
			student.Username,
			student.Email,
			student.Gender,
			student.Phone,
			csvTime(student.CreatedAt),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFeesCSV streams every fee with the owning student resolved.
func (s *ReportService) ExportFeesCSV(w io.Writer) error {
	var fees []models.Fee
	if err := s.DB.Preload("Student").Order("due_date ASC").Find(&fees).Error; err != nil {
		return fmt.Errorf("failed to load fees: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"student name", "student_id", "fee_type", "amount", "due_date", "paid_date", "status", "receipt_number", "payment_method"}); err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, fee := range fees {
		sid := ""
		if fee.Student.StudentID != nil {
			sid = *fee.Student.StudentID
		}
		receipt := ""
		if fee.ReceiptNumber != nil {
			receipt = *fee.ReceiptNumber
		}
		if err := cw.Write([]string{
			fee.Student.FullName,
			sid,
			fee.FeeType,
			strconv.FormatFloat(fee.Amount, 'f', 2, 64),
			csvTime(fee.DueDate),
			csvTimePtr(fee.PaidDate),
			fee.EffectiveStatus(now),
			receipt,
			fee.PaymentMethod,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportAllocationsCSV streams allocations with student and room context.
func (s *ReportService) ExportAllocationsCSV(w io.Writer) error {
	var allocations []models.Allocation
	if err := s.DB.Preload("Student").Preload("Room").Preload("Room.Block").
		Order("allocated_at ASC").
		Find(&allocations).Error; err != nil {
		return fmt.Errorf("failed to load allocations: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"student name", "student_id", "block", "floor", "room_number", "room_type", "allocated_at", "check_in_date", "check_out_date", "status", "checkout_reason"}); err != nil {
		return err
	}
	for _, allocation := range allocations {
		sid := ""
		if allocation.Student.StudentID != nil {
			sid = *allocation.Student.StudentID
		}
		if err := cw.Write([]string{
			allocation.Student.FullName,
			sid,
			allocation.Room.Block.Name,
			strconv.Itoa(allocation.Room.Floor),
			allocation.Room.RoomNumber,
			allocation.Room.RoomType,
			csvTime(allocation.AllocatedAt),
			csvTimePtr(allocation.CheckInDate),
			csvTimePtr(allocation.CheckOutDate),
			allocation.Status,
			allocation.CheckoutReason,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportRoomsCSV streams the room inventory.
func (s *ReportService) ExportRoomsCSV(w io.Writer) error {
	var rooms []models.Room
	if err := s.DB.Preload("Block").
		Order("block_id ASC, floor ASC, room_number ASC").
		Find(&rooms).Error; err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"block", "gender", "floor", "room_number", "room_type", "capacity", "current_occupancy", "status", "price"}); err != nil {
		return err
	}
	for _, room := range rooms {
		if err := cw.Write([]string{
			room.Block.Name,
			room.Block.Gender,
			strconv.Itoa(room.Floor),
			room.RoomNumber,
			room.RoomType,
			strconv.Itoa(room.Capacity),
			strconv.Itoa(room.CurrentOccupancy),
			room.Status,
			strconv.FormatFloat(room.Price, 'f', 2, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
