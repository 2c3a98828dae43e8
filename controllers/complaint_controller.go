package controllers

import (
	"net/http"
	"strings"

	"hostel-backend/middleware"
	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type SubmitComplaintPayload struct {
	Category    string `json:"category" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateComplaintPayload struct {
	Status        string `json:"status"`
	AdminResponse string `json:"admin_response"`
	AssignedTo    string `json:"assigned_to"`
}

type ComplaintController struct {
	ComplaintSvc *services.ComplaintService
}

func NewComplaintController(svc *services.ComplaintService) *ComplaintController {
	return &ComplaintController{ComplaintSvc: svc}
}

// SubmitComplaint (POST /api/complaints) — student
func (ctrl *ComplaintController) SubmitComplaint(c *gin.Context) {
	var payload SubmitComplaintPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "category, title and description are required")
		return
	}

	complaint, err := ctrl.ComplaintSvc.Submit(
		middleware.ActorID(c),
		strings.TrimSpace(payload.Category),
		strings.TrimSpace(payload.Title),
		payload.Description,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, complaint)
}

// GetMyComplaints (GET /api/complaints/my) — student
func (ctrl *ComplaintController) GetMyComplaints(c *gin.Context) {
	list, err := ctrl.ComplaintSvc.ListByStudent(middleware.ActorID(c), 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GetComplaints (GET /api/complaints) — admin
func (ctrl *ComplaintController) GetComplaints(c *gin.Context) {
	list, err := ctrl.ComplaintSvc.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// UpdateComplaint (PATCH /api/complaints/:id) — admin triage
func (ctrl *ComplaintController) UpdateComplaint(c *gin.Context) {
	complaintID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload UpdateComplaintPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	complaint, err := ctrl.ComplaintSvc.Update(complaintID, payload.Status, payload.AdminResponse, payload.AssignedTo)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, complaint)
}
