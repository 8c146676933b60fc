package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/services"
	"github.com/kevinelliott/henry-saloniq/store"
	"github.com/kevinelliott/henry-saloniq/utils"
)

type GoalController struct {
	store *store.Store
}

func NewGoalController(s *store.Store) *GoalController {
	return &GoalController{store: s}
}

type UpsertGoalInput struct {
	UserID     string  `json:"user_id"`
	Month      string  `json:"month"` // YYYY-MM
	GoalAmount float64 `json:"goal_amount"`
}

// goalRow is one month's goal with its actual completed revenue.
type goalRow struct {
	models.RevenueGoal
	ActualRevenue float64 `json:"actual_revenue"`
	ProgressPct   int     `json:"progress_pct"`
}

// GetGoals lists the account's goals, newest month first, each with
// actual revenue and clamped progress.
func (gc *GoalController) GetGoals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goals, err := gc.store.GoalsForUser(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	completed, err := gc.store.CompletedAppointments(userID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	revenue := services.MonthlyRevenue(completed)
	rows := make([]goalRow, 0, len(goals))
	for _, g := range goals {
		actual := revenue[g.Month]
		rows = append(rows, goalRow{
			RevenueGoal:   g,
			ActualRevenue: actual,
			ProgressPct:   services.GoalProgressPct(actual, g.GoalAmount),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// UpsertGoal sets the target for a month, replacing any existing row.
func (gc *GoalController) UpsertGoal(c *gin.Context) {
	var input UpsertGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.UserID == "" || input.Month == "" || input.GoalAmount == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	if err := gc.store.UpsertGoal(userID, input.Month, input.GoalAmount); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
