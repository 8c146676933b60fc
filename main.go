package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/kevinelliott/henry-saloniq/config"
	"github.com/kevinelliott/henry-saloniq/models"
	"github.com/kevinelliott/henry-saloniq/routes"
	"github.com/kevinelliott/henry-saloniq/services"
	"github.com/kevinelliott/henry-saloniq/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}
	config.SetupLogging()

	cfg := config.Load()

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Stylist{},
		&models.Appointment{},
		&models.RevenueGoal{},
		&models.ToolCallLog{},
	); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	digests := services.NewDigestService(store.New(db), cfg.Twilio)
	digests.StartScheduler()

	r := routes.SetupRouter(cfg, db)
	printRoutes(r)

	slog.Info("listening", "port", cfg.Port, "demo", cfg.Demo())
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
