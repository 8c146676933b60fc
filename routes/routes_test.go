package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kevinelliott/henry-saloniq/config"
	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "8080",
		JWTSecret:      "test-secret",
		JWTExpiryHours: 24,
		AdminAuth:      config.AdminAuth{Mode: config.AuthModeOpen},
		AppURL:         "http://localhost:3000",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Stylist{},
		&models.Appointment{},
		&models.RevenueGoal{},
		&models.ToolCallLog{},
	))

	return SetupRouter(cfg, db), store.New(db)
}

func doJSON(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedStylist(t *testing.T, st *store.Store, userID uuid.UUID) models.Stylist {
	t.Helper()
	stylist := models.Stylist{
		UserID:   userID,
		Name:     "Emma Chen",
		HireDate: "2022-03-15",
		Active:   true,
	}
	require.NoError(t, st.CreateStylist(&stylist))
	return stylist
}

func TestCreateAppointment(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	userID := uuid.New()
	stylist := seedStylist(t, st, userID)

	t.Run("defaults status to scheduled", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/appointments", gin.H{
			"user_id":      userID.String(),
			"stylist_id":   stylist.ID.String(),
			"client_name":  "Sarah L",
			"service":      "Color",
			"price":        120,
			"scheduled_at": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		}, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		data := body["data"].(map[string]any)
		assert.Equal(t, "scheduled", data["status"])
		assert.Equal(t, 120.0, data["price"])
		assert.Equal(t, "Sarah L", data["client_name"])
	})

	t.Run("missing client_name is rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/appointments", gin.H{
			"user_id":      userID.String(),
			"stylist_id":   stylist.ID.String(),
			"service":      "Color",
			"price":        120,
			"scheduled_at": time.Now().Format(time.RFC3339),
		}, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields", decode(t, w)["error"])
	})

	t.Run("explicit status is kept", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/appointments", gin.H{
			"user_id":      userID.String(),
			"stylist_id":   stylist.ID.String(),
			"client_name":  "Emily K",
			"service":      "Haircut",
			"price":        65,
			"scheduled_at": time.Now().Format(time.RFC3339),
			"status":       "completed",
		}, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "completed", data["status"])
	})
}

func TestStatsEndpoint(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	userID := uuid.New()
	stylist := seedStylist(t, st, userID)

	t.Run("requires user_id", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/v1/stats", nil, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "user_id required", decode(t, w)["error"])
	})

	t.Run("empty account yields zeros", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/v1/stats?user_id="+uuid.NewString(), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, 0.0, body["todayRevenue"])
		assert.Equal(t, 0.0, body["noShowRate"])
		assert.Equal(t, 0.0, body["stylistCount"])
	})

	t.Run("reflects completed revenue", func(t *testing.T) {
		require.NoError(t, st.CreateAppointment(&models.Appointment{
			UserID:      userID,
			StylistID:   stylist.ID,
			ClientName:  "Sarah L",
			Service:     "Color",
			Price:       120,
			ScheduledAt: time.Now(),
			Status:      models.StatusCompleted,
		}))

		w := doJSON(r, http.MethodGet, "/api/v1/stats?user_id="+userID.String(), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, 120.0, body["todayRevenue"])
		assert.Equal(t, 120.0, body["monthRevenue"])
		assert.Equal(t, 1.0, body["stylistCount"])
	})
}

func TestSeedEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())
	userID := uuid.New()

	w := doJSON(r, http.MethodPost, "/api/seed", gin.H{"user_id": userID.String()}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 3.0, body["stylists"])
	assert.Greater(t, body["appointments"], 0.0)

	w = doJSON(r, http.MethodPost, "/api/seed", gin.H{"user_id": userID.String()}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Already seeded", decode(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/api/seed", gin.H{}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user_id required", decode(t, w)["error"])
}

func TestGoalsEndpoint(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	userID := uuid.New()
	stylist := seedStylist(t, st, userID)

	month := time.Now().Format("2006-01")
	w := doJSON(r, http.MethodPost, "/api/goals", gin.H{
		"user_id":     userID.String(),
		"month":       month,
		"goal_amount": 18000,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// upsert replaces, never duplicates
	w = doJSON(r, http.MethodPost, "/api/goals", gin.H{
		"user_id":     userID.String(),
		"month":       month,
		"goal_amount": 20000,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, st.CreateAppointment(&models.Appointment{
		UserID:      userID,
		StylistID:   stylist.ID,
		ClientName:  "Sarah L",
		Service:     "Extensions",
		Price:       10000,
		ScheduledAt: time.Now(),
		Status:      models.StatusCompleted,
	}))

	w = doJSON(r, http.MethodGet, "/api/goals?user_id="+userID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	require.Len(t, data, 1)
	row := data[0].(map[string]any)
	assert.Equal(t, 20000.0, row["goal_amount"])
	assert.Equal(t, 10000.0, row["actual_revenue"])
	assert.Equal(t, 50.0, row["progress_pct"])
}

func TestAdminAuthModes(t *testing.T) {
	t.Run("shared secret mode", func(t *testing.T) {
		cfg := testConfig()
		cfg.AdminAuth = config.AdminAuth{Mode: config.AuthModeSharedSecret, Key: "hunter2"}
		r, _ := newTestRouter(t, cfg)

		w := doJSON(r, http.MethodGet, "/api/admin", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doJSON(r, http.MethodGet, "/api/admin", nil, map[string]string{"X-Admin-Key": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doJSON(r, http.MethodGet, "/api/admin", nil, map[string]string{"X-Admin-Key": "hunter2"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decode(t, w)["demo"])
	})

	t.Run("open mode skips the header check", func(t *testing.T) {
		r, _ := newTestRouter(t, testConfig())

		w := doJSON(r, http.MethodGet, "/api/admin", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["demo"])
	})
}

func TestAdminStats(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	userID := uuid.New()
	stylist := seedStylist(t, st, userID)

	for _, a := range []struct {
		price  float64
		status string
	}{
		{100, models.StatusCompleted},
		{200, models.StatusCompleted},
		{300, models.StatusNoShow},
		{400, models.StatusCancelled},
	} {
		require.NoError(t, st.CreateAppointment(&models.Appointment{
			UserID:      userID,
			StylistID:   stylist.ID,
			ClientName:  "Sarah L",
			Service:     "Color",
			Price:       a.price,
			ScheduledAt: time.Now(),
			Status:      a.status,
		}))
	}

	w := doJSON(r, http.MethodGet, "/api/admin/stats", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 300.0, body["totalRevenue"])
	assert.Equal(t, 25.0, body["noShowRate"])
	assert.Equal(t, 4.0, body["appointments"])
}

func TestStripeDemoMode(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := doJSON(r, http.MethodPost, "/api/stripe/checkout", gin.H{"priceId": "price_123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/pricing?demo=true", decode(t, w)["url"])

	w = doJSON(r, http.MethodPost, "/api/stripe/portal", gin.H{"customerId": "cus_123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/pricing?demo=true", decode(t, w)["url"])

	w = doJSON(r, http.MethodPost, "/api/stripe/webhook", gin.H{"type": "checkout.session.completed"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["received"])
}
