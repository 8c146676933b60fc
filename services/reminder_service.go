// services/reminder_service.go
package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/kevinelliott/henry-saloniq/config"
	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/store"
	"github.com/kevinelliott/henry-saloniq/utils"
)

// DigestService texts each salon owner a morning summary: today's
// bookings and yesterday's takings. Without Twilio credentials it only
// logs the digests (demo mode).
type DigestService struct {
	store  *store.Store
	twilio config.TwilioConfig
	client *twilio.RestClient
	now    func() time.Time
}

func NewDigestService(s *store.Store, cfg config.TwilioConfig) *DigestService {
	svc := &DigestService{
		store:  s,
		twilio: cfg,
		now:    time.Now,
	}
	if cfg.Enabled() {
		svc.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
	}
	return svc
}

// StartScheduler runs the digest every day at 8 AM.
func (s *DigestService) StartScheduler() *cron.Cron {
	c := cron.New()
	c.AddFunc("0 8 * * *", s.SendDailyDigests)
	c.Start()
	slog.Info("digest scheduler started")
	return c
}

func (s *DigestService) SendDailyDigests() {
	slog.Info("daily digest run started")

	users, err := s.store.ActiveUsers()
	if err != nil {
		slog.Error("failed to fetch accounts for digest", "error", err)
		return
	}

	for _, user := range users {
		if err := s.sendDigest(user); err != nil {
			slog.Error("digest failed", "user_id", user.ID, "error", err)
		}
	}

	slog.Info("daily digest run completed", "accounts", len(users))
}

func (s *DigestService) sendDigest(user models.User) error {
	now := s.now()
	today := utils.BeginningOfDay(now)

	todayAppts, err := s.store.ScheduledBetween(user.ID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	allAppts, err := s.store.AppointmentsForUser(user.ID)
	if err != nil {
		return err
	}
	yesterdayRevenue := TodayRevenue(allAppts, now.AddDate(0, 0, -1))

	message := fmt.Sprintf(
		"Good morning! You have %d appointments booked today. Yesterday's revenue: $%.0f.",
		len(todayAppts), yesterdayRevenue,
	)

	stylists, err := s.store.ActiveStylists(user.ID)
	if err != nil {
		return err
	}
	if ranking := TopStylists(allAppts, stylists, 1); len(ranking) > 0 {
		message += fmt.Sprintf(" Top earner: %s ($%.0f).", ranking[0].Name, ranking[0].Revenue)
	}

	if s.client == nil || user.Phone == "" {
		slog.Info("digest (demo mode)", "user_id", user.ID, "message", message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(message)
	if strings.HasPrefix(user.Phone, "+") && s.twilio.WhatsAppNumber != "" {
		params.SetTo("whatsapp:" + user.Phone)
		params.SetFrom("whatsapp:" + s.twilio.WhatsAppNumber)
	} else {
		params.SetTo(user.Phone)
		params.SetFrom(s.twilio.PhoneNumber)
	}

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		slog.Info("digest sent", "user_id", user.ID, "sid", *resp.Sid)
	}
	return nil
}
