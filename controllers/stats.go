package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kevinelliott/henry-saloniq/services"
	"github.com/kevinelliott/henry-saloniq/store"
	"github.com/kevinelliott/henry-saloniq/utils"
)

// StatsController serves the public stats snapshot.
type StatsController struct {
	store *store.Store
}

func NewStatsController(s *store.Store) *StatsController {
	return &StatsController{store: s}
}

// GetStats returns the derived dashboard numbers for one account.
func (sc *StatsController) GetStats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	appts, err := sc.store.AppointmentsForUser(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	stylists, err := sc.store.ActiveStylists(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, services.ComputeStats(appts, stylists, time.Now()))
}

// requireUserID pulls and parses the user_id query param shared by the
// account-scoped read endpoints.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "user_id required")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "invalid user_id")
		return uuid.Nil, false
	}
	return userID, true
}
