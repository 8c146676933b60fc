// controllers/stripe.go
//
// Billing delegation. All heavy lifting happens inside Stripe; without
// a live key these endpoints redirect to placeholder URLs (demo mode).
package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	billingsession "github.com/stripe/stripe-go/v79/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/kevinelliott/henry-saloniq/config"
	"github.com/kevinelliott/henry-saloniq/utils"
)

type StripeController struct {
	cfg *config.Config
}

func NewStripeController(cfg *config.Config) *StripeController {
	return &StripeController{cfg: cfg}
}

type checkoutInput struct {
	PriceID string `json:"priceId"`
	UserID  string `json:"userId"`
}

// Checkout opens a subscription checkout session.
func (sc *StripeController) Checkout(c *gin.Context) {
	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !sc.cfg.StripeEnabled() {
		c.JSON(http.StatusOK, gin.H{"url": "/pricing?demo=true"})
		return
	}

	stripe.Key = sc.cfg.StripeSecretKey
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(input.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(sc.cfg.AppURL + "/dashboard?upgraded=true"),
		CancelURL:  stripe.String(sc.cfg.AppURL + "/pricing"),
	}
	params.AddMetadata("userId", input.UserID)

	session, err := checkoutsession.New(params)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

type portalInput struct {
	CustomerID string `json:"customerId"`
}

// Portal opens the billing self-service portal for a customer.
func (sc *StripeController) Portal(c *gin.Context) {
	var input portalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !sc.cfg.StripeEnabled() {
		c.JSON(http.StatusOK, gin.H{"url": "/pricing?demo=true"})
		return
	}

	stripe.Key = sc.cfg.StripeSecretKey
	session, err := billingsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(input.CustomerID),
		ReturnURL: stripe.String(sc.cfg.AppURL + "/dashboard"),
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

// Webhook verifies and acknowledges billing events. With no webhook
// secret configured every event is acknowledged unverified.
func (sc *StripeController) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "failed to read body")
		return
	}

	if !sc.cfg.StripeWebhookEnabled() {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	event, err := webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"), sc.cfg.StripeWebhookSecret)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid signature")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		slog.Info("subscription checkout completed", "event", event.ID)
	case "customer.subscription.deleted":
		slog.Info("subscription cancelled", "event", event.ID)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
