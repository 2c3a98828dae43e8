// controllers/allocation_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type ApprovePayload struct {
	RoomID uint   `json:"room_id"`
	Notes  string `json:"notes"`
}

type ReviewNotesPayload struct {
	Notes string `json:"notes"`
}

type CheckInPayload struct {
	Date string `json:"check_in_date"` // YYYY-MM-DD, empty = now
}

type CheckOutPayload struct {
	Date        string `json:"check_out_date"` // YYYY-MM-DD, empty = now
	Reason      string `json:"checkout_reason"`
	ReasonOther string `json:"checkout_reason_other"`
}

// ---------------------------
// Controller
// ---------------------------

type AllocationController struct {
	AllocationSvc *services.AllocationService
}

func NewAllocationController(svc *services.AllocationService) *AllocationController {
	return &AllocationController{AllocationSvc: svc}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ApproveApplication (POST /api/applications/:id/approve) — admin
func (ctrl *AllocationController) ApproveApplication(c *gin.Context) {
	applicationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload ApprovePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	allocation, err := ctrl.AllocationSvc.Approve(applicationID, payload.RoomID, payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, allocation)
}

// AutoAllocateApplication (POST /api/applications/:id/auto-allocate) — admin
func (ctrl *AllocationController) AutoAllocateApplication(c *gin.Context) {
	applicationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	allocation, err := ctrl.AllocationSvc.AutoAllocate(applicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, allocation)
}

// RejectApplication (POST /api/applications/:id/reject) — admin
func (ctrl *AllocationController) RejectApplication(c *gin.Context) {
	applicationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload ReviewNotesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	application, err := ctrl.AllocationSvc.Reject(applicationID, payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, application)
}

// GetAllocations (GET /api/allocations?status=active) — admin
func (ctrl *AllocationController) GetAllocations(c *gin.Context) {
	list, err := ctrl.AllocationSvc.ListAllocations(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// CheckIn (POST /api/allocations/:id/check-in) — admin
// Records or corrects the check-in date; the allocation stays active.
func (ctrl *AllocationController) CheckIn(c *gin.Context) {
	allocationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload CheckInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	date, err := parseDateField(payload.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in_date must be YYYY-MM-DD")
		return
	}

	allocation, err := ctrl.AllocationSvc.CheckIn(allocationID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, allocation)
}

// CheckOut (POST /api/allocations/:id/check-out) — admin
func (ctrl *AllocationController) CheckOut(c *gin.Context) {
	allocationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload CheckOutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	date, err := parseDateField(payload.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_out_date must be YYYY-MM-DD")
		return
	}

	allocation, err := ctrl.AllocationSvc.CheckOut(allocationID, date, payload.Reason, payload.ReasonOther)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, allocation)
}
