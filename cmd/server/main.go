package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cropdoctor/cropdoctor/internal/delivery/http"
	"github.com/cropdoctor/cropdoctor/internal/repository/postgres"
	"github.com/cropdoctor/cropdoctor/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	zapLogger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool := connectDatabase(ctx, cfg, zapLogger)
	if pool != nil {
		defer pool.Close()
	}

	// Dependency Injection: Repositories
	var detectionRepo service.DetectionRepository
	if pool != nil {
		detectionRepo = postgres.NewPostgresRepository(pool)
	} else {
		detectionRepo = postgres.NewMemoryRepository()
	}

	// Dependency Injection: Services
	visionSvc := service.NewVisionService(cfg.VisionAPIKey, cfg.VisionBaseURL, cfg.VisionModel, zapLogger)
	weatherSvc := service.NewWeatherService(cfg.OpenWeatherAPIKey, zapLogger)
	detectionSvc := service.NewDetectionService(visionSvc, detectionRepo, zapLogger)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "CropDoctor API v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    16 * 1024 * 1024,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, detectionSvc, weatherSvc, visionSvc, detectionRepo, zapLogger)

	// Graceful shutdown
	go func() {
		zapLogger.Info("Server starting", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zapLogger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zapLogger.Warn("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exited gracefully")
}

type Config struct {
	DatabaseURL       string
	MigrationsURL     string
	OpenWeatherAPIKey string
	VisionAPIKey      string
	VisionBaseURL     string
	VisionModel       string
	Port              string
	Env               string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		MigrationsURL:     getEnv("MIGRATIONS_URL", "file://migrations"),
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		VisionAPIKey:      getEnv("OPENAI_API_KEY", ""),
		VisionBaseURL:     getEnv("VISION_BASE_URL", ""),
		VisionModel:       getEnv("VISION_MODEL", ""),
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// connectDatabase opens the connection pool, verifies connectivity and
// applies migrations. Any failure degrades to in-memory storage so the
// API stays usable without a database.
func connectDatabase(ctx context.Context, cfg *Config, zapLogger *zap.Logger) *pgxpool.Pool {
	if cfg.DatabaseURL == "" {
		zapLogger.Warn("DATABASE_URL not set, running with in-memory storage")
		return nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zapLogger.Warn("Could not configure database pool, running with in-memory storage", zap.Error(err))
		return nil
	}

	if err := pool.Ping(ctx); err != nil {
		zapLogger.Warn("Could not reach database, running with in-memory storage", zap.Error(err))
		pool.Close()
		return nil
	}

	if err := postgres.Migrate(pool, cfg.MigrationsURL); err != nil {
		zapLogger.Warn("Migrations failed, running with in-memory storage", zap.Error(err))
		pool.Close()
		return nil
	}

	zapLogger.Info("Connected to PostgreSQL")
	return pool
}
