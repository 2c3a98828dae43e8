package controllers

import (
	"net/http"
	"strings"

	"hostel-backend/config"
	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Get Blocks (GET /api/blocks)
// ----------------------------------------------------

func GetBlocks(c *gin.Context) {
	var blocks []models.Block
	config.DB.Preload("Rooms").Find(&blocks)

	c.JSON(http.StatusOK, blocks)
}

// ----------------------------------------------------
// 2. Create Block (POST /api/blocks) — admin
// ----------------------------------------------------

func CreateBlock(c *gin.Context) {
	var block models.Block
	if err := c.ShouldBindJSON(&block); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	block.Name = strings.TrimSpace(block.Name)
	if block.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "block name is required")
		return
	}
	if block.Gender != "male" && block.Gender != "female" {
		utils.JSONError(c, http.StatusBadRequest, "block gender must be 'male' or 'female'")
		return
	}

	if result := config.DB.Create(&block); result.Error != nil {
		if isDuplicateKey(result.Error) {
			utils.JSONError(c, http.StatusConflict, "block name already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}

	c.JSON(http.StatusCreated, block)
}
