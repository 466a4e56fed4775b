package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lykr/lykr_backend/actions"
	"github.com/lykr/lykr_backend/messages"
	"github.com/lykr/lykr_backend/middleware"
	"github.com/lykr/lykr_backend/models"
	"github.com/lykr/lykr_backend/repositories"
	"github.com/lykr/lykr_backend/services"
	"github.com/lykr/lykr_backend/utils"
)

// AuthController contains authentication logic
type AuthController struct {
	DB         *mongo.Client
	Redis      *redis.Client
	auth       *actions.Auth
	users      *repositories.UserRepository
	googleAuth *services.GoogleAuthService
	appleAuth  *services.AppleAuthService
	logger     *log.Logger

	loginAttempts map[string]struct {
		count       int
		lastAttempt time.Time
	}
	loginAttemptsMu sync.RWMutex
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client, redisClient *redis.Client, auth *actions.Auth, users *repositories.UserRepository) *AuthController {
	ac := &AuthController{
		DB:         db,
		Redis:      redisClient,
		auth:       auth,
		users:      users,
		googleAuth: services.NewGoogleAuthService(),
		appleAuth:  services.NewAppleAuthService(),
		logger:     log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
		loginAttempts: make(map[string]struct {
			count       int
			lastAttempt time.Time
		}),
	}

	go ac.startLoginAttemptCleanupRoutine()

	return ac
}

func (ac *AuthController) startLoginAttemptCleanupRoutine() {
	for {
		time.Sleep(30 * time.Minute)
		ac.loginAttemptsMu.Lock()
		for id, attempts := range ac.loginAttempts {
			if time.Since(attempts.lastAttempt) > 30*time.Minute {
				delete(ac.loginAttempts, id)
			}
		}
		ac.loginAttemptsMu.Unlock()
	}
}

// catalogFor picks the message catalog from the Accept-Language header.
func catalogFor(c echo.Context) messages.Catalog {
	lang := c.Request().Header.Get("Accept-Language")
	if strings.HasPrefix(strings.ToLower(lang), "ar") {
		return messages.ForLocale("ar")
	}
	return messages.ForLocale("en")
}

// actionStatus maps an action result to an HTTP status.
func actionStatus(res *models.ActionResult, failStatus int) int {
	if res.Success {
		return http.StatusOK
	}
	return failStatus
}

// Register handles the signup form
func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	res := ac.auth.Register(c.Request().Context(), catalogFor(c), req)
	status := actionStatus(res, http.StatusBadRequest)
	return c.JSON(status, models.Response{Status: status, Message: res.Message, Data: res})
}

// Login checks credentials and issues a JWT on success
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Email))

	ac.loginAttemptsMu.RLock()
	attempts, exists := ac.loginAttempts[identifier]
	ac.loginAttemptsMu.RUnlock()

	if exists && attempts.count >= 5 && time.Since(attempts.lastAttempt) < 30*time.Minute {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Status:  http.StatusTooManyRequests,
			Message: "Too many failed login attempts. Please try again later.",
		})
	}

	res, user := ac.auth.Login(c.Request().Context(), catalogFor(c), req)
	if !res.Success {
		ac.loginAttemptsMu.Lock()
		ac.loginAttempts[identifier] = struct {
			count       int
			lastAttempt time.Time
		}{count: attempts.count + 1, lastAttempt: time.Now()}
		ac.loginAttemptsMu.Unlock()

		status := http.StatusUnauthorized
		if res.Errors != nil {
			status = http.StatusBadRequest
		}
		return c.JSON(status, models.Response{Status: status, Message: res.Message, Data: res})
	}

	ac.loginAttemptsMu.Lock()
	delete(ac.loginAttempts, identifier)
	ac.loginAttemptsMu.Unlock()

	rememberMe := c.QueryParam("rememberMe") == "true"
	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, rememberMe)
	if err != nil {
		ac.logger.Printf("token generation failed for %s: %v", user.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: res.Message,
		Data: map[string]interface{}{
			"token":        token,
			"refreshToken": refreshToken,
			"user":         user,
		},
	})
}

// Logout blacklists the presented token until it would have expired
func (ac *AuthController) Logout(c echo.Context) error {
	userToken, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "No active session",
		})
	}

	expiry := time.Now().Add(24 * time.Hour)
	if claims, ok := userToken.Claims.(*middleware.JwtCustomClaims); ok && claims.ExpiresAt > 0 {
		expiry = time.Unix(claims.ExpiresAt, 0)
	}
	middleware.BlacklistToken(userToken.Raw, expiry)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: catalogFor(c).Get("logoutSuccess"),
	})
}

// ForgotPassword mails a reset link
func (ac *AuthController) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	res := ac.auth.ForgotPassword(c.Request().Context(), catalogFor(c), req)
	status := actionStatus(res, http.StatusBadRequest)
	return c.JSON(status, models.Response{Status: status, Message: res.Message, Data: res})
}

// ResetPassword sets a new password from a reset-link token
func (ac *AuthController) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	res := ac.auth.ResetPassword(c.Request().Context(), catalogFor(c), req)
	status := actionStatus(res, http.StatusBadRequest)
	return c.JSON(status, models.Response{Status: status, Message: res.Message, Data: res})
}

// SendOTP mails a six-digit recovery code
func (ac *AuthController) SendOTP(c echo.Context) error {
	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	res := ac.auth.SendOTP(c.Request().Context(), catalogFor(c), req)
	status := actionStatus(res, http.StatusBadRequest)
	return c.JSON(status, models.Response{Status: status, Message: res.Message, Data: res})
}

// VerifyOTP checks a submitted recovery code
func (ac *AuthController) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// Attempt counting happens before the code is checked
	if ac.Redis != nil {
		if email, err := utils.SanitizeEmail(req.Email); err == nil {
			if err := utils.ValidateOTPAttempts(email, ac.Redis); err != nil {
				return c.JSON(http.StatusTooManyRequests, models.Response{
					Status:  http.StatusTooManyRequests,
					Message: "Too many verification attempts. Please request a new code.",
				})
			}
		}
	}

	res := ac.auth.VerifyOTP(c.Request().Context(), catalogFor(c), req)
	if res.Success && ac.Redis != nil {
		if email, err := utils.SanitizeEmail(req.Email); err == nil {
			utils.ClearOTPAttempts(email, ac.Redis)
		}
	}

	status := actionStatus(res, http.StatusBadRequest)
	return c.JSON(status, models.Response{Status: status, Message: res.Message, Data: res})
}

// ResetPasswordByOTP sets a new password after OTP verification
func (ac *AuthController) ResetPasswordByOTP(c echo.Context) error {
	var req models.ResetPasswordByOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	res := ac.auth.ResetPasswordByOTP(c.Request().Context(), catalogFor(c), req)
	status := actionStatus(res, http.StatusBadRequest)
	return c.JSON(status, models.Response{Status: status, Message: res.Message, Data: res})
}

// GoogleLogin verifies a Google ID token and signs the account in
func (ac *AuthController) GoogleLogin(c echo.Context) error {
	var req models.GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	identity, err := ac.googleAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		ac.logger.Printf("Google token verification failed: %v", err)
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Google sign-in failed",
		})
	}

	user, err := ac.users.FindOrCreateOAuthUser(c.Request().Context(), identity.Email, identity.DisplayName, identity.GoogleID, "")
	if err != nil {
		ac.logger.Printf("Google account linkage failed for %s: %v", identity.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to sign in",
		})
	}

	return ac.issueOAuthSession(c, user)
}

// AppleLogin verifies an Apple identity token and signs the account in
func (ac *AuthController) AppleLogin(c echo.Context) error {
	var req models.AppleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	identity, err := ac.appleAuth.VerifyIdentityToken(c.Request().Context(), req.IdentityToken)
	if err != nil {
		ac.logger.Printf("Apple token verification failed: %v", err)
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Apple sign-in failed",
		})
	}

	// Apple only shares the email on first authorization
	if identity.Email == "" {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Apple token carries no email",
		})
	}

	user, err := ac.users.FindOrCreateOAuthUser(c.Request().Context(), identity.Email, req.FullName, "", identity.AppleUserID)
	if err != nil {
		ac.logger.Printf("Apple account linkage failed for %s: %v", identity.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to sign in",
		})
	}

	return ac.issueOAuthSession(c, user)
}

func (ac *AuthController) issueOAuthSession(c echo.Context, user *models.User) error {
	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, false)
	if err != nil {
		ac.logger.Printf("token generation failed for %s: %v", user.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: catalogFor(c).Get("loginSuccess"),
		Data: map[string]interface{}{
			"token":        token,
			"refreshToken": refreshToken,
			"user":         user,
		},
	})
}

// Me returns the authenticated account
func (ac *AuthController) Me(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid session",
		})
	}

	user, err := ac.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OK",
		Data:    user,
	})
}
