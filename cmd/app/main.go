package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"dispatch/cmd"
	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/core/domain/model/geo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := connectDB(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	warmCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.EnsureSheets(warmCtx); err != nil {
		log.Fatalf("Error seeding sheet headers: %v", err)
	}
	if err := app.WarmUp(warmCtx); err != nil {
		logger.WarnContext(warmCtx, "Cache warm-up failed, continuing cold", "error", err)
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error building job manager: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Infof("No .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "3000"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("DB_NAME", "dispatch"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		GroqBaseURL: os.Getenv("GROQ_BASE_URL"),
		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		GroqModel:   os.Getenv("GROQ_MODEL"),

		GPSCacheTTL:           time.Duration(envFloat("GPS_CACHE_TTL_SECONDS", 30)) * time.Second,
		IdleSpeedThresholdKmh: envFloat("IDLE_SPEED_THRESHOLD_KMH", 5),
		CleanupRetention:      time.Duration(envFloat("GPS_CLEANUP_HOURS", 24)) * time.Hour,
		AutoAssignDelivery:    envBool("AUTO_ASSIGN_DELIVERY", true),
		AutoProcessMaxValue:   envFloat("AUTO_PROCESS_MAX_VALUE", 5000),
		WarehouseLat:          envFloat("WAREHOUSE_LAT", 13.7563),
		WarehouseLng:          envFloat("WAREHOUSE_LNG", 100.5018),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func connectDB(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	handlers, err := app.CreateHandlers()
	if err != nil {
		log.Fatalf("Error building handlers: %v", err)
	}
	warehouse, err := geo.NewPoint(configs.WarehouseLat, configs.WarehouseLng)
	if err != nil {
		log.Fatalf("Error parsing warehouse location: %v", err)
	}
	server, err := dispatchhttp.NewServer(handlers, configs.CleanupRetention, warehouse)
	if err != nil {
		log.Fatalf("Error building server: %v", err)
	}

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
