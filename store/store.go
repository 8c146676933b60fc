// Package store is the data access layer. Every account-facing read is
// scoped by user_id; the unscoped queries at the bottom back the admin
// surface only.
package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kevinelliott/henry-saloniq/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migrations.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// --- appointments ---

func (s *Store) AppointmentsForUser(userID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Preload("Stylist").
		Where("user_id = ?", userID).
		Find(&appts).Error
	return appts, err
}

func (s *Store) RecentAppointments(userID uuid.UUID, limit int) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Preload("Stylist").
		Where("user_id = ?", userID).
		Order("scheduled_at DESC").
		Limit(limit).
		Find(&appts).Error
	return appts, err
}

func (s *Store) CompletedAppointments(userID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Find(&appts).Error
	return appts, err
}

// ScheduledBetween returns scheduled appointments in [from, to).
func (s *Store) ScheduledBetween(userID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Where(
		"user_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at < ?",
		userID, models.StatusScheduled, from, to,
	).Find(&appts).Error
	return appts, err
}

func (s *Store) CreateAppointment(appt *models.Appointment) error {
	return s.db.Create(appt).Error
}

func (s *Store) CreateAppointments(appts []models.Appointment) error {
	if len(appts) == 0 {
		return nil
	}
	return s.db.CreateInBatches(&appts, 200).Error
}

// --- stylists ---

func (s *Store) ActiveStylists(userID uuid.UUID) ([]models.Stylist, error) {
	var stylists []models.Stylist
	err := s.db.Where("user_id = ? AND active = ?", userID, true).
		Find(&stylists).Error
	return stylists, err
}

func (s *Store) HasStylists(userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Stylist{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CreateStylist(stylist *models.Stylist) error {
	return s.db.Create(stylist).Error
}

func (s *Store) CreateStylists(stylists []models.Stylist) error {
	if len(stylists) == 0 {
		return nil
	}
	return s.db.Create(&stylists).Error
}

// --- profiles ---

func (s *Store) UpsertProfile(userID uuid.UUID, businessName string) error {
	profile := models.Profile{
		UserID:       userID,
		BusinessName: businessName,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"business_name"}),
	}).Create(&profile).Error
}

// ProfilesPage returns one page of profiles plus the total count.
func (s *Store) ProfilesPage(page, limit int) ([]models.Profile, int64, error) {
	var total int64
	if err := s.db.Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var profiles []models.Profile
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&profiles).Error
	return profiles, total, err
}

// --- revenue goals ---

func (s *Store) GoalsForUser(userID uuid.UUID) ([]models.RevenueGoal, error) {
	var goals []models.RevenueGoal
	err := s.db.Where("user_id = ?", userID).
		Order("month DESC").
		Find(&goals).Error
	return goals, err
}

func (s *Store) GoalForMonth(userID uuid.UUID, month string) (*models.RevenueGoal, error) {
	var goal models.RevenueGoal
	err := s.db.Where("user_id = ? AND month = ?", userID, month).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpsertGoal races between concurrent callers are settled by the
// (user_id, month) unique constraint; last write wins.
func (s *Store) UpsertGoal(userID uuid.UUID, month string, amount float64) error {
	goal := models.RevenueGoal{
		UserID:     userID,
		Month:      month,
		GoalAmount: amount,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"goal_amount"}),
	}).Create(&goal).Error
}

// --- users ---

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *Store) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ActiveUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Where("is_active = ?", true).Find(&users).Error
	return users, err
}

func (s *Store) TouchLastLogin(user *models.User) error {
	now := time.Now()
	return s.db.Model(user).Update("last_login", &now).Error
}

// --- tool call log ---

func (s *Store) RecordToolCall(tool, userID string, success bool) error {
	return s.db.Create(&models.ToolCallLog{
		Tool:    tool,
		UserID:  userID,
		Success: success,
	}).Error
}

func (s *Store) RecentToolCalls(limit int) ([]models.ToolCallLog, error) {
	var calls []models.ToolCallLog
	err := s.db.Order("created_at DESC").Limit(limit).Find(&calls).Error
	return calls, err
}

func (s *Store) CountToolCalls() (int64, error) {
	var count int64
	err := s.db.Model(&models.ToolCallLog{}).Count(&count).Error
	return count, err
}

// TopTools lists tool names by call volume, busiest first.
func (s *Store) TopTools(limit int) ([]string, error) {
	var tools []string
	err := s.db.Model(&models.ToolCallLog{}).
		Select("tool").
		Group("tool").
		Order("COUNT(*) DESC").
		Limit(limit).
		Pluck("tool", &tools).Error
	return tools, err
}

// --- admin (unscoped) ---

func (s *Store) CountProfiles() (int64, error) {
	var count int64
	err := s.db.Model(&models.Profile{}).Count(&count).Error
	return count, err
}

func (s *Store) CountAppointments() (int64, error) {
	var count int64
	err := s.db.Model(&models.Appointment{}).Count(&count).Error
	return count, err
}

func (s *Store) CountStylists() (int64, error) {
	var count int64
	err := s.db.Model(&models.Stylist{}).Count(&count).Error
	return count, err
}

func (s *Store) CountGoals() (int64, error) {
	var count int64
	err := s.db.Model(&models.RevenueGoal{}).Count(&count).Error
	return count, err
}

// AllAppointments is admin-only; it feeds the platform-wide revenue and
// no-show aggregates.
func (s *Store) AllAppointments() ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Find(&appts).Error
	return appts, err
}
