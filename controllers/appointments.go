package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/store"
	"github.com/kevinelliott/henry-saloniq/utils"
)

type AppointmentController struct {
	store *store.Store
}

func NewAppointmentController(s *store.Store) *AppointmentController {
	return &AppointmentController{store: s}
}

// CreateAppointmentInput takes the booking fields as loosely as the
// wire format allows; required-field checks happen after binding so a
// partial body still yields the single "Missing required fields" error.
type CreateAppointmentInput struct {
	UserID      string  `json:"user_id"`
	StylistID   string  `json:"stylist_id"`
	ClientName  string  `json:"client_name"`
	Service     string  `json:"service"`
	Price       float64 `json:"price"`
	ScheduledAt string  `json:"scheduled_at"`
	Status      string  `json:"status"`
}

// CreateAppointment books an appointment. Duplicate submissions create
// duplicate rows; there is no idempotency key.
func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.UserID == "" || input.StylistID == "" || input.ClientName == "" ||
		input.Service == "" || input.Price == 0 || input.ScheduledAt == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "invalid user_id")
		return
	}
	stylistID, err := uuid.Parse(input.StylistID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "invalid stylist_id")
		return
	}
	scheduledAt, err := time.Parse(time.RFC3339, input.ScheduledAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "invalid scheduled_at")
		return
	}

	status := input.Status
	if status == "" {
		status = models.StatusScheduled
	}

	appt := models.Appointment{
		UserID:      userID,
		StylistID:   stylistID,
		ClientName:  input.ClientName,
		Service:     input.Service,
		Price:       input.Price,
		ScheduledAt: scheduledAt,
		Status:      status,
	}

	if err := ac.store.CreateAppointment(&appt); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": appt})
}

// GetAppointments lists the account's latest 100 appointments, newest
// first, with the stylist resolved.
func (ac *AppointmentController) GetAppointments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	appts, err := ac.store.RecentAppointments(userID, 100)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": appts})
}
