package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kevinelliott/henry-saloniq/config"
	"github.com/kevinelliott/henry-saloniq/controllers"
	"github.com/kevinelliott/henry-saloniq/services"
	"github.com/kevinelliott/henry-saloniq/store"
	"github.com/kevinelliott/henry-saloniq/utils"
)

func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())
	r.Use(config.RequestMetrics())

	st := store.New(db)

	authController := controllers.NewAuthController(st, cfg)
	statsController := controllers.NewStatsController(st)
	appointmentController := controllers.NewAppointmentController(st)
	stylistController := controllers.NewStylistController(st)
	goalController := controllers.NewGoalController(st)
	seedController := controllers.NewSeedController(services.NewSeeder(st))
	mcpController := controllers.NewMcpController(st)
	adminController := controllers.NewAdminController(st, cfg)
	stripeController := controllers.NewStripeController(cfg)

	r.GET("/metrics", config.MetricsHandler())

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware(cfg.JWTSecret))
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	{
		api.GET("/v1/stats", statsController.GetStats)

		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentController.CreateAppointment)
			appointments.GET("", appointmentController.GetAppointments)
		}

		stylists := api.Group("/stylists")
		{
			stylists.POST("", stylistController.CreateStylist)
			stylists.GET("", stylistController.GetStylists)
		}

		goals := api.Group("/goals")
		{
			goals.POST("", goalController.UpsertGoal)
			goals.GET("", goalController.GetGoals)
		}

		api.POST("/seed", seedController.Seed)

		api.POST("/mcp", mcpController.Handle)
		api.GET("/mcp", mcpController.Describe)

		admin := api.Group("/admin")
		admin.Use(controllers.AdminAuthMiddleware(cfg.AdminAuth))
		{
			admin.GET("", adminController.Overview)
			admin.GET("/stats", adminController.Stats)
			admin.GET("/users", adminController.Users)
			admin.GET("/mcp-usage", adminController.McpUsage)
			admin.GET("/subscriptions", adminController.Subscriptions)
		}

		stripe := api.Group("/stripe")
		{
			stripe.POST("/checkout", stripeController.Checkout)
			stripe.POST("/portal", stripeController.Portal)
			stripe.POST("/webhook", stripeController.Webhook)
		}
	}

	return r
}
