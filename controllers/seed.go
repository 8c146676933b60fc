package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kevinelliott/henry-saloniq/services"
	"github.com/kevinelliott/henry-saloniq/utils"
)

type SeedController struct {
	seeder *services.Seeder
}

func NewSeedController(seeder *services.Seeder) *SeedController {
	return &SeedController{seeder: seeder}
}

type seedInput struct {
	UserID string `json:"user_id"`
}

// Seed populates demo data for a fresh account. Calling it twice is a
// no-op.
func (sc *SeedController) Seed(c *gin.Context) {
	var input seedInput
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "user_id required")
		return
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	result, err := sc.seeder.Run(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if result.AlreadySeeded {
		c.JSON(http.StatusOK, gin.H{"message": "Already seeded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"stylists":     result.Stylists,
		"appointments": result.Appointments,
	})
}
