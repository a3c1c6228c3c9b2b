package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/config"
	"github.com/mindstep-labs/mindstep-api/internal/database"
	"github.com/mindstep-labs/mindstep-api/internal/handler"
	"github.com/mindstep-labs/mindstep-api/internal/middleware"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
	"github.com/mindstep-labs/mindstep-api/internal/router"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/pkg/ai"
	cloud "github.com/mindstep-labs/mindstep-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Profile{},
		&models.SkillTestResult{},
		&models.PsychometricResult{},
		&models.Marksheet{},
		&models.UserSkill{},
		&models.LearningActivity{},
		&models.LearningGoal{},
		&models.MentorMessage{},
		&models.Preference{},
		&models.RoadmapProgress{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSAddr != "" {
		natsConn, err = nats.Connect(cfg.NATSAddr)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	var storage service.FileStorage
	if cfg.CloudinaryCloudName != "" {
		uploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		storage = uploader
	}

	responder := mentorResponder(cfg, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	learningRepo := repository.NewLearningRepository(db)
	mentorRepo := repository.NewMentorRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	roadmapRepo := repository.NewRoadmapRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	gateway := service.NewSimulatedGateway(cfg.UpgradeDelay, logger)
	authService := service.NewAuthService(userRepo, sessionRepo, gateway, validate, logger, cfg.JWTSecret, cfg.AdminAccessCode)
	profileService := service.NewProfileService(profileRepo, validate, logger)
	assessmentService := service.NewAssessmentService(assessmentRepo, validate, logger)
	careerService := service.NewCareerService(skillRepo, validate, logger)
	learningService := service.NewLearningService(learningRepo, validate, logger)
	mentorService := service.NewMentorService(mentorRepo, responder, redisClient, "mindstep:mentor", natsConn, validate, logger, cfg.MentorTypingDelay)
	dashboardService := service.NewDashboardService(userRepo, profileRepo, assessmentRepo, skillRepo, learningRepo, redisClient, "dashboard", cfg.DashboardCacheTTL, logger)
	preferenceService := service.NewPreferenceService(preferenceRepo, validate, logger)
	roadmapService := service.NewRoadmapService(roadmapRepo, validate, logger)
	scanService := service.NewScanService(storage, cfg.UploadMaxMB, logger)
	adminService := service.NewAdminService(adminRepo, redisClient, cfg.DashboardCacheTTL, logger)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mentorService.Start(runCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, dashboardService, logger),
		ProfileHandler:    handler.NewProfileHandler(profileService, dashboardService, logger),
		AssessmentHandler: handler.NewAssessmentHandler(assessmentService, dashboardService, logger),
		ScanHandler:       handler.NewScanHandler(scanService, logger),
		CareerHandler:     handler.NewCareerHandler(careerService, dashboardService, logger),
		LearningHandler:   handler.NewLearningHandler(learningService, dashboardService, logger),
		RoadmapHandler:    handler.NewRoadmapHandler(roadmapService, logger),
		MentorHandler:     handler.NewMentorHandler(mentorService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, preferenceService, logger),
		AdminHandler:      handler.NewAdminHandler(adminService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func mentorResponder(cfg config.Config, logger zerolog.Logger) ai.Responder {
	if cfg.AIProvider == "openai" && cfg.OpenAIAPIKey != "" {
		responder, err := ai.NewOpenAIResponder(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Logger: logger,
		})
		if err == nil {
			return responder
		}
		logger.Warn().Err(err).Msg("openai responder unavailable, falling back to canned replies")
	}

	return ai.NewCannedResponder()
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
