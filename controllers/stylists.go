package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/store"
	"github.com/kevinelliott/henry-saloniq/utils"
)

type StylistController struct {
	store *store.Store
}

func NewStylistController(s *store.Store) *StylistController {
	return &StylistController{store: s}
}

type CreateStylistInput struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	HireDate string `json:"hire_date"` // YYYY-MM-DD
}

// GetStylists lists the account's active stylists.
func (sc *StylistController) GetStylists(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stylists, err := sc.store.ActiveStylists(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stylists})
}

func (sc *StylistController) CreateStylist(c *gin.Context) {
	var input CreateStylistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.UserID == "" || input.Name == "" || input.HireDate == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	stylist := models.Stylist{
		UserID:   userID,
		Name:     input.Name,
		HireDate: input.HireDate,
		Active:   true,
	}

	if err := sc.store.CreateStylist(&stylist); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": stylist})
}
