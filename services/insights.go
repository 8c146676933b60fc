// services/insights.go
//
// Pure reporting arithmetic over appointment snapshots. Every function
// here is total: empty or degenerate input yields a zero value, never
// an error. All call sites (public stats, admin stats, MCP tools,
// daily digest) share this one implementation.
package services

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/utils"
)

// WeeklySlotsPerStylist is the assumed bookable capacity of one chair
// per week. Hard-coded industry default; not configurable per salon.
const WeeklySlotsPerStylist = 35

// StatsSnapshot is the fixed set of derived numbers the dashboard and
// public stats endpoint report.
type StatsSnapshot struct {
	TodayRevenue   float64 `json:"todayRevenue"`
	MonthRevenue   float64 `json:"monthRevenue"`
	UtilizationPct int     `json:"utilizationPct"`
	NoShowRate     int     `json:"noShowRate"`
	StylistCount   int     `json:"stylistCount"`
}

// StylistRevenue is one row of the per-stylist ranking.
type StylistRevenue struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Revenue float64   `json:"revenue"`
}

// ComputeStats derives the full snapshot from one account's
// appointments and active stylists.
func ComputeStats(appts []models.Appointment, stylists []models.Stylist, now time.Time) StatsSnapshot {
	return StatsSnapshot{
		TodayRevenue:   TodayRevenue(appts, now),
		MonthRevenue:   MonthRevenue(appts, now),
		UtilizationPct: UtilizationPct(appts, len(stylists), now),
		NoShowRate:     NoShowRate(appts, now),
		StylistCount:   len(stylists),
	}
}

// TodayRevenue sums completed appointments scheduled on now's calendar
// day.
func TodayRevenue(appts []models.Appointment, now time.Time) float64 {
	day := utils.DayString(now)
	var total float64
	for _, a := range appts {
		if a.Status == models.StatusCompleted && utils.DayString(a.ScheduledAt.In(now.Location())) == day {
			total += a.Price
		}
	}
	return total
}

// MonthRevenue sums completed appointments scheduled in now's calendar
// month.
func MonthRevenue(appts []models.Appointment, now time.Time) float64 {
	month := utils.MonthString(now)
	var total float64
	for _, a := range appts {
		if a.Status == models.StatusCompleted && utils.MonthString(a.ScheduledAt.In(now.Location())) == month {
			total += a.Price
		}
	}
	return total
}

// UtilizationPct is the booked share of theoretical weekly capacity:
// non-cancelled appointments over the trailing 7 days against
// stylistCount x WeeklySlotsPerStylist. Zero stylists means zero
// utilization, not a division by zero.
func UtilizationPct(appts []models.Appointment, stylistCount int, now time.Time) int {
	slots := stylistCount * WeeklySlotsPerStylist
	if slots == 0 {
		return 0
	}
	weekAgo := now.AddDate(0, 0, -7)
	booked := 0
	for _, a := range appts {
		if a.Status != models.StatusCancelled && !a.ScheduledAt.Before(weekAgo) {
			booked++
		}
	}
	return roundPct(float64(booked) / float64(slots) * 100)
}

// NoShowRate is the no-show share of now's calendar-month
// appointments, in whole percent. Empty month yields 0.
func NoShowRate(appts []models.Appointment, now time.Time) int {
	month := utils.MonthString(now)
	total, noShows := 0, 0
	for _, a := range appts {
		if utils.MonthString(a.ScheduledAt.In(now.Location())) != month {
			continue
		}
		total++
		if a.Status == models.StatusNoShow {
			noShows++
		}
	}
	if total == 0 {
		return 0
	}
	return roundPct(float64(noShows) / float64(total) * 100)
}

// TopStylists ranks stylists by completed revenue, busiest first.
// The sort is stable, so ties keep the order stylists first appear in
// the appointment list. Names come from the stylist list, falling back
// to the preloaded association, then "Unknown".
func TopStylists(appts []models.Appointment, stylists []models.Stylist, limit int) []StylistRevenue {
	names := make(map[uuid.UUID]string, len(stylists))
	for _, s := range stylists {
		names[s.ID] = s.Name
	}

	totals := make(map[uuid.UUID]float64)
	var order []uuid.UUID
	for _, a := range appts {
		if a.Status != models.StatusCompleted {
			continue
		}
		if _, seen := totals[a.StylistID]; !seen {
			order = append(order, a.StylistID)
			if _, ok := names[a.StylistID]; !ok && a.Stylist != nil {
				names[a.StylistID] = a.Stylist.Name
			}
		}
		totals[a.StylistID] += a.Price
	}

	ranking := make([]StylistRevenue, 0, len(order))
	for _, id := range order {
		name := names[id]
		if name == "" {
			name = "Unknown"
		}
		ranking = append(ranking, StylistRevenue{ID: id, Name: name, Revenue: totals[id]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Revenue > ranking[j].Revenue
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// GoalProgressPct is actual revenue against a monthly goal, clamped to
// 100. No goal (or a non-positive one) reads as zero progress.
func GoalProgressPct(actual, goal float64) int {
	if goal <= 0 {
		return 0
	}
	pct := roundPct(actual / goal * 100)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// TotalRevenue sums all completed appointments regardless of date.
// Admin surface only.
func TotalRevenue(appts []models.Appointment) float64 {
	var total float64
	for _, a := range appts {
		if a.Status == models.StatusCompleted {
			total += a.Price
		}
	}
	return total
}

// OverallNoShowRate is the all-time no-show share in whole percent.
// Admin surface only.
func OverallNoShowRate(appts []models.Appointment) int {
	if len(appts) == 0 {
		return 0
	}
	noShows := 0
	for _, a := range appts {
		if a.Status == models.StatusNoShow {
			noShows++
		}
	}
	return roundPct(float64(noShows) / float64(len(appts)) * 100)
}

// MonthlyRevenue buckets completed revenue by YYYY-MM month key.
func MonthlyRevenue(appts []models.Appointment) map[string]float64 {
	buckets := make(map[string]float64)
	for _, a := range appts {
		if a.Status == models.StatusCompleted {
			buckets[utils.MonthString(a.ScheduledAt)] += a.Price
		}
	}
	return buckets
}

func roundPct(v float64) int {
	return int(math.Round(v))
}
