package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/lykr/lykr_backend/controllers"
	"github.com/lykr/lykr_backend/middleware"
)

// RegisterOnboardingRoutes sets up the wizard, transcription and voice-agent
// routes. The wizard itself is session-scoped and needs no account; only
// completion requires one.
func RegisterOnboardingRoutes(e *echo.Echo, onboardingController *controllers.OnboardingController, transcriptionController *controllers.TranscriptionController, voiceAgentController *controllers.VoiceAgentController) {
	g := e.Group("/api/onboarding")

	g.GET("/state", onboardingController.GetState)
	g.GET("/steps", onboardingController.GetSteps)
	g.PUT("/business-info", onboardingController.SetBusinessInfo)
	g.PUT("/website", onboardingController.SetWebsite)
	g.POST("/documents", onboardingController.AddDocument)
	g.DELETE("/documents/:index", onboardingController.RemoveDocument)
	g.PUT("/competitors", onboardingController.SetCompetitors)
	g.PUT("/voice-interview", onboardingController.SetVoiceInterview)
	g.POST("/voice-interview/transcript", onboardingController.ConfirmTranscript)
	g.POST("/reset", onboardingController.Reset)
	g.POST("/complete", onboardingController.Complete, middleware.JWTMiddleware())

	e.POST("/api/transcribe", transcriptionController.Transcribe)
	e.GET("/api/voice-agent", voiceAgentController.Connect)
}
