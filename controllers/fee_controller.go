package controllers

import (
	"net/http"

	"hostel-backend/middleware"
	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type RecordPaymentPayload struct {
	PaymentMethod string                 `json:"payment_method" binding:"required"`
	Meta          map[string]interface{} `json:"meta"`
}

type FeeController struct {
	FeeSvc *services.FeeService
}

func NewFeeController(svc *services.FeeService) *FeeController {
	return &FeeController{FeeSvc: svc}
}

// GetMyFees (GET /api/fees/my) — student
func (ctrl *FeeController) GetMyFees(c *gin.Context) {
	fees, err := ctrl.FeeSvc.ListByStudent(middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, fees)
}

// GetFees (GET /api/fees) — admin
func (ctrl *FeeController) GetFees(c *gin.Context) {
	fees, err := ctrl.FeeSvc.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, fees)
}

// RecordPayment (POST /api/fees/:id/pay) — admin
func (ctrl *FeeController) RecordPayment(c *gin.Context) {
	feeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload RecordPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "payment_method is required")
		return
	}

	fee, err := ctrl.FeeSvc.RecordPayment(feeID, payload.PaymentMethod, payload.Meta)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, fee)
}

// BackfillFees (POST /api/fees/backfill) — admin
// Creates the missing hostel fee for active allocations without a pending one.
func (ctrl *FeeController) BackfillFees(c *gin.Context) {
	created, skipped, err := ctrl.FeeSvc.BackfillHostelFees()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"fees_created": created,
		"fees_skipped": skipped,
	})
}
