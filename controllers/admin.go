package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/subscription"

	"github.com/kevinelliott/henry-saloniq/config"
	"github.com/kevinelliott/henry-saloniq/services"
	"github.com/kevinelliott/henry-saloniq/store"
	"github.com/kevinelliott/henry-saloniq/utils"
)

// AdminController serves the operator dashboards. Reads are unscoped;
// access is gated by AdminAuthMiddleware instead of per-row filters.
type AdminController struct {
	store *store.Store
	cfg   *config.Config
}

func NewAdminController(s *store.Store, cfg *config.Config) *AdminController {
	return &AdminController{store: s, cfg: cfg}
}

// AdminAuthMiddleware enforces the auth mode chosen at startup: open
// (demo) or shared-secret header.
func AdminAuthMiddleware(auth config.AdminAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.Mode == config.AuthModeOpen {
			c.Next()
			return
		}
		if c.GetHeader("X-Admin-Key") != auth.Key {
			utils.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}

// Overview returns platform-wide row counts.
func (ac *AdminController) Overview(c *gin.Context) {
	users, err := ac.store.CountProfiles()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	appointments, err := ac.store.CountAppointments()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	stylists, err := ac.store.CountStylists()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"demo":         ac.cfg.Demo(),
		"users":        users,
		"appointments": appointments,
		"stylists":     stylists,
	})
}

// Stats adds platform-wide revenue and no-show aggregates to the
// counts.
func (ac *AdminController) Stats(c *gin.Context) {
	users, err := ac.store.CountProfiles()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	stylists, err := ac.store.CountStylists()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	goals, err := ac.store.CountGoals()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	appts, err := ac.store.AllAppointments()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"demo":         ac.cfg.Demo(),
		"users":        users,
		"appointments": len(appts),
		"stylists":     stylists,
		"totalRevenue": services.TotalRevenue(appts),
		"noShowRate":   services.OverallNoShowRate(appts),
		"goals":        goals,
	})
}

// Users returns one page of account profiles.
func (ac *AdminController) Users(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	profiles, total, err := ac.store.ProfilesPage(page, limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"demo":       ac.cfg.Demo(),
		"data":       profiles,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": int(math.Ceil(float64(total) / float64(limit))),
	})
}

// McpUsage reports recent tool calls and the busiest tools.
func (ac *AdminController) McpUsage(c *gin.Context) {
	calls, err := ac.store.RecentToolCalls(50)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := ac.store.CountToolCalls()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	topTools, err := ac.store.TopTools(5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"demo":     ac.cfg.Demo(),
		"data":     calls,
		"topTools": topTools,
		"total":    total,
	})
}

// Subscriptions lists live billing subscriptions, or explains their
// absence in demo mode.
func (ac *AdminController) Subscriptions(c *gin.Context) {
	if !ac.cfg.StripeEnabled() {
		c.JSON(http.StatusOK, gin.H{
			"demo":  ac.cfg.Demo(),
			"data":  []gin.H{},
			"total": 0,
			"note":  "Stripe integration required for subscription data",
		})
		return
	}

	stripe.Key = ac.cfg.StripeSecretKey
	params := &stripe.SubscriptionListParams{}
	params.Limit = stripe.Int64(20)

	subs := []gin.H{}
	iter := subscription.List(params)
	for iter.Next() {
		s := iter.Subscription()
		subs = append(subs, gin.H{
			"id":       s.ID,
			"status":   s.Status,
			"customer": s.Customer.ID,
		})
	}
	if err := iter.Err(); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"demo":  ac.cfg.Demo(),
		"data":  subs,
		"total": len(subs),
	})
}
