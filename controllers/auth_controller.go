package controllers

import (
	"net/http"
	"strings"

	"hostel-backend/config"
	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerPayload struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=student admin"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female"`
	StudentID string `json:"student_id"`
	Phone     string `json:"phone"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a user account. Role is fixed at creation; there is no
// role-change path.
func Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	username := strings.TrimSpace(payload.Username)
	email := strings.TrimSpace(payload.Email)
	role := payload.Role
	if role == "" {
		role = models.RoleStudent
	}

	var count int64
	config.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		utils.JSONError(c, http.StatusConflict, "username already exists")
		return
	}
	config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		utils.JSONError(c, http.StatusConflict, "email already exists")
		return
	}

	var studentID *string
	if role == models.RoleStudent {
		sid := strings.TrimSpace(payload.StudentID)
		if sid != "" {
			config.DB.Model(&models.User{}).Where("student_id = ?", sid).Count(&count)
			if count > 0 {
				utils.JSONError(c, http.StatusConflict, "student ID already exists")
				return
			}
			studentID = &sid
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		FullName:  strings.TrimSpace(payload.FullName),
		Role:      role,
		Gender:    payload.Gender,
		StudentID: studentID,
		Phone:     strings.TrimSpace(payload.Phone),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, user)
}

// Login verifies credentials and issues a session token carrying the user's
// id and role.
func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", username).First(&user).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"full_name": user.FullName,
			"role":      user.Role,
		},
	})
}
