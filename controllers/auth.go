package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kevinelliott/henry-saloniq/config"
	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/store"
	"github.com/kevinelliott/henry-saloniq/utils"
)

type AuthController struct {
	store *store.Store
	cfg   *config.Config
}

func NewAuthController(s *store.Store, cfg *config.Config) *AuthController {
	return &AuthController{store: s, cfg: cfg}
}

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Phone        string `json:"phone"`
	BusinessName string `json:"business_name" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and its profile and returns a token.
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	if _, err := ac.store.UserByEmail(input.Email); err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: input.Password, // hashed in BeforeCreate hook
		Phone:    input.Phone,
		IsActive: true,
	}
	if err := ac.store.CreateUser(&user); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if err := ac.store.UpsertProfile(user.ID, input.BusinessName); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), ac.cfg.JWTSecret, ac.cfg.JWTExpiryHours)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"phone":         user.Phone,
			"business_name": input.BusinessName,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := ac.store.UserByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), ac.cfg.JWTSecret, ac.cfg.JWTExpiryHours)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := ac.store.TouchLastLogin(user); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"phone": user.Phone,
		},
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	user, err := ac.store.UserByID(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
