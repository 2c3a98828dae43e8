package controllers

import (
	"net/http"

	"hostel-backend/middleware"
	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type SubmitApplicationPayload struct {
	PreferredBlock    string `json:"preferred_block"`
	PreferredRoomType string `json:"preferred_room_type"`
	Reason            string `json:"reason"`
}

type ApplicationController struct {
	ApplicationSvc *services.ApplicationService
}

func NewApplicationController(svc *services.ApplicationService) *ApplicationController {
	return &ApplicationController{ApplicationSvc: svc}
}

// SubmitApplication (POST /api/applications) — student
func (ctrl *ApplicationController) SubmitApplication(c *gin.Context) {
	var payload SubmitApplicationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	application, err := ctrl.ApplicationSvc.Submit(
		middleware.ActorID(c),
		payload.PreferredBlock,
		payload.PreferredRoomType,
		payload.Reason,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, application)
}

// GetMyApplication (GET /api/applications/my) — student
func (ctrl *ApplicationController) GetMyApplication(c *gin.Context) {
	application, err := ctrl.ApplicationSvc.GetByStudent(middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, application)
}

// GetApplications (GET /api/applications?status=) — admin
func (ctrl *ApplicationController) GetApplications(c *gin.Context) {
	list, err := ctrl.ApplicationSvc.ListAll(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}
