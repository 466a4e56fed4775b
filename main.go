package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/lykr/lykr_backend/actions"
	"github.com/lykr/lykr_backend/config"
	"github.com/lykr/lykr_backend/controllers"
	"github.com/lykr/lykr_backend/middleware"
	"github.com/lykr/lykr_backend/onboarding"
	"github.com/lykr/lykr_backend/repositories"
	"github.com/lykr/lykr_backend/routes"
	"github.com/lykr/lykr_backend/services"
	"github.com/lykr/lykr_backend/utils"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// smtpMailer satisfies actions.Mailer over the SMTP helpers.
type smtpMailer struct{}

func (smtpMailer) SendOTP(to, code string) error        { return utils.SendOTPEmail(to, code) }
func (smtpMailer) SendResetLink(to, token string) error { return utils.SendResetLinkEmail(to, token) }

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeaders())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Lykr Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserRepository(client)
	crmRepo := repositories.NewCRMRepository(client)

	// Auth actions over the user store
	var mailer actions.Mailer
	if os.Getenv("SMTP_HOST") != "" {
		mailer = smtpMailer{}
	}
	auth := actions.NewAuth(userRepo, mailer)

	// Session-scoped wizard snapshots
	snapshotStore := onboarding.NewSnapshotStore(redisClient, onboarding.DefaultSnapshotTTL)

	// Initialize controllers
	authController := controllers.NewAuthController(client, redisClient, auth, userRepo)
	onboardingController := controllers.NewOnboardingController(snapshotStore, crmRepo, userRepo)
	transcriptionController := controllers.NewTranscriptionController(services.NewTranscriptionService())
	voiceAgentController := controllers.NewVoiceAgentController(services.NewVoiceAgentService(), snapshotStore)
	crmController := controllers.NewCRMController(crmRepo)

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterOnboardingRoutes(e, onboardingController, transcriptionController, voiceAgentController)
	routes.RegisterCRMRoutes(e, client, crmController)

	// Expire blacklisted tokens in the background
	go middleware.CleanupBlacklist()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
