package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/lykr/lykr_backend/controllers"
	"github.com/lykr/lykr_backend/middleware"
)

// RegisterAuthRoutes sets up the authentication routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	// Public authentication routes
	e.POST("/api/auth/register", authController.Register)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/google", authController.GoogleLogin)
	e.POST("/api/auth/apple", authController.AppleLogin)

	// Password recovery
	e.POST("/api/auth/forgot-password", authController.ForgotPassword)
	e.POST("/api/auth/reset-password", authController.ResetPassword)
	e.POST("/api/auth/send-otp", authController.SendOTP)
	e.POST("/api/auth/verify-otp", authController.VerifyOTP)
	e.POST("/api/auth/reset-password-otp", authController.ResetPasswordByOTP)

	// Authenticated session routes
	session := e.Group("/api/auth")
	session.Use(middleware.JWTMiddleware())
	session.POST("/logout", authController.Logout)
	session.GET("/me", authController.Me)
}
