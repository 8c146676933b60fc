// services/seeder.go
package services

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/store"
)

var seedStylists = []models.Stylist{
	{Name: "Emma Chen", HireDate: "2022-03-15", Active: true},
	{Name: "Sofia Martinez", HireDate: "2021-06-01", Active: true},
	{Name: "Marcus Williams", HireDate: "2023-01-10", Active: true},
}

var seedServices = []struct {
	Name  string
	Price float64
}{
	{"Haircut", 65},
	{"Color", 120},
	{"Highlights", 160},
	{"Blowout", 45},
	{"Treatment", 80},
	{"Extensions", 300},
}

var seedClients = []string{
	"Sarah L", "Emily K", "Jessica M", "Amanda P", "Rachel T", "Olivia S",
	"Hannah B", "Mia C", "Chloe D", "Anna W", "Grace F", "Lily N",
}

// Weighted draw table for past days: 60% completed, 20% no-show,
// 10% cancelled, 10% still marked scheduled.
var seedStatuses = []models.AppointmentStatus{
	models.StatusCompleted, models.StatusCompleted, models.StatusCompleted,
	models.StatusCompleted, models.StatusCompleted, models.StatusCompleted,
	models.StatusNoShow, models.StatusNoShow,
	models.StatusCancelled,
	models.StatusScheduled,
}

// Seeder populates a fresh account with a plausible month of demo
// data so the dashboard is non-empty on first login.
type Seeder struct {
	store *store.Store
	rng   *rand.Rand
	now   func() time.Time
}

func NewSeeder(s *store.Store) *Seeder {
	return &Seeder{
		store: s,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

type SeedResult struct {
	AlreadySeeded bool
	Stylists      int
	Appointments  int
}

// Run seeds the account, or no-ops if any stylist already exists.
// Inserts are not transactional across collections; the stylist check
// is the only idempotency guard.
func (s *Seeder) Run(userID uuid.UUID) (SeedResult, error) {
	seeded, err := s.store.HasStylists(userID)
	if err != nil {
		return SeedResult{}, err
	}
	if seeded {
		return SeedResult{AlreadySeeded: true}, nil
	}

	if err := s.store.UpsertProfile(userID, "Luxe Salon & Spa"); err != nil {
		return SeedResult{}, err
	}

	stylists := make([]models.Stylist, len(seedStylists))
	copy(stylists, seedStylists)
	for i := range stylists {
		stylists[i].ID = uuid.New()
		stylists[i].UserID = userID
	}
	if err := s.store.CreateStylists(stylists); err != nil {
		return SeedResult{}, err
	}

	now := s.now()
	var appts []models.Appointment
	for day := -30; day <= 2; day++ {
		date := now.AddDate(0, 0, day)
		if date.Weekday() == time.Sunday {
			continue
		}

		for _, stylist := range stylists {
			count := 3 + s.rng.Intn(4) // 3-6 per stylist per day
			for i := 0; i < count; i++ {
				hour := 9 + s.rng.Intn(8)
				service := seedServices[s.rng.Intn(len(seedServices))]

				status := models.StatusScheduled
				if day < 0 {
					status = seedStatuses[s.rng.Intn(len(seedStatuses))]
				}

				appts = append(appts, models.Appointment{
					UserID:      userID,
					StylistID:   stylist.ID,
					ClientName:  seedClients[s.rng.Intn(len(seedClients))],
					Service:     service.Name,
					Price:       service.Price,
					ScheduledAt: time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location()),
					Status:      status,
				})
			}
		}
	}
	if err := s.store.CreateAppointments(appts); err != nil {
		return SeedResult{}, err
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	goals := []struct {
		Month  string
		Amount float64
	}{
		{firstOfMonth.Format("2006-01"), 18000},
		{firstOfMonth.AddDate(0, 1, 0).Format("2006-01"), 20000},
	}
	for _, g := range goals {
		if strings.HasSuffix(g.Month, "-00") {
			continue
		}
		if err := s.store.UpsertGoal(userID, g.Month, g.Amount); err != nil {
			return SeedResult{}, err
		}
	}

	return SeedResult{Stylists: len(stylists), Appointments: len(appts)}, nil
}
