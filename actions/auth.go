// actions/auth.go
package actions

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/lykr/lykr_backend/messages"
	"github.com/lykr/lykr_backend/models"
	"github.com/lykr/lykr_backend/utils"
)

// ErrNotFound is returned by stores when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserStore is the persistence surface the auth actions depend on.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	SetOTP(ctx context.Context, email string, otp models.OTPInfo) error
	ClearOTP(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// Mailer delivers recovery emails. A nil mailer logs instead of sending,
// which keeps local development working without SMTP.
type Mailer interface {
	SendOTP(to, code string) error
	SendResetLink(to, token string) error
}

// Auth bundles the form-facing account operations. Every method returns an
// ActionResult whose Values echo back the submitted fields so the form can
// re-render them; passwords are never echoed.
type Auth struct {
	store  UserStore
	mailer Mailer
	logger *log.Logger
}

func NewAuth(store UserStore, mailer Mailer) *Auth {
	return &Auth{
		store:  store,
		mailer: mailer,
		logger: log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
	}
}

// Register creates a new account from the signup form.
func (a *Auth) Register(ctx context.Context, cat messages.Catalog, req models.RegisterRequest) *models.ActionResult {
	values := map[string]string{"name": req.Name, "email": req.Email}
	fieldErrors := map[string][]string{}

	if req.Name == "" {
		fieldErrors["name"] = append(fieldErrors["name"], cat.Get("nameRequired"))
	}
	email, _ := a.requireEmail(cat, req.Email, fieldErrors)
	a.requirePassword(cat, req.Password, fieldErrors)
	if req.Password != req.ConfirmPassword {
		fieldErrors["confirmPassword"] = append(fieldErrors["confirmPassword"], cat.Get("passwordMismatch"))
	}

	if len(fieldErrors) > 0 {
		return failure(cat.Get("registerFailed"), fieldErrors, values)
	}

	if existing, err := a.store.FindByEmail(ctx, email); err == nil && existing != nil {
		fieldErrors["email"] = append(fieldErrors["email"], cat.Get("emailExists"))
		return failure(cat.Get("registerFailed"), fieldErrors, values)
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		a.logger.Printf("register lookup failed for %s: %v", email, err)
		return serverError(cat, values)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		a.logger.Printf("password hashing failed: %v", err)
		return serverError(cat, values)
	}

	now := time.Now()
	_, err = a.store.Create(ctx, &models.User{
		Name:      utils.SanitizeInput(req.Name),
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		a.logger.Printf("user creation failed for %s: %v", email, err)
		return serverError(cat, values)
	}

	return &models.ActionResult{Success: true, Message: cat.Get("registerSuccess")}
}

// Login checks credentials and returns the account on success.
func (a *Auth) Login(ctx context.Context, cat messages.Catalog, req models.LoginRequest) (*models.ActionResult, *models.User) {
	values := map[string]string{"email": req.Email}
	fieldErrors := map[string][]string{}

	email, _ := a.requireEmail(cat, req.Email, fieldErrors)
	if req.Password == "" {
		fieldErrors["password"] = append(fieldErrors["password"], cat.Get("passwordRequired"))
	}
	if len(fieldErrors) > 0 {
		return failure(cat.Get("loginFailed"), fieldErrors, values), nil
	}

	user, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return failure(cat.Get("invalidCredentials"), nil, values), nil
		}
		a.logger.Printf("login lookup failed for %s: %v", email, err)
		return serverError(cat, values), nil
	}

	// OAuth-only accounts carry no password hash
	if user.Password == "" || !utils.CheckPasswordHash(req.Password, user.Password) {
		return failure(cat.Get("invalidCredentials"), nil, values), nil
	}

	return &models.ActionResult{Success: true, Message: cat.Get("loginSuccess")}, user
}

// ForgotPassword issues a reset token and mails a reset link.
func (a *Auth) ForgotPassword(ctx context.Context, cat messages.Catalog, req models.ForgotPasswordRequest) *models.ActionResult {
	values := map[string]string{"email": req.Email}
	fieldErrors := map[string][]string{}

	email, _ := a.requireEmail(cat, req.Email, fieldErrors)
	if len(fieldErrors) > 0 {
		return failure(cat.Get("serverError"), fieldErrors, values)
	}

	if _, err := a.findUser(ctx, cat, email, fieldErrors, values); err != nil {
		return failure(cat.Get("serverError"), fieldErrors, values)
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		a.logger.Printf("reset token generation failed: %v", err)
		return serverError(cat, values)
	}

	if err := a.store.SetResetToken(ctx, email, token, time.Now().Add(1*time.Hour)); err != nil {
		a.logger.Printf("storing reset token failed for %s: %v", email, err)
		return serverError(cat, values)
	}

	if a.mailer == nil {
		a.logger.Printf("no mailer configured, reset token for %s: %s", email, token)
	} else if err := a.mailer.SendResetLink(email, token); err != nil {
		a.logger.Printf("sending reset link to %s failed: %v", email, err)
		return serverError(cat, values)
	}

	return &models.ActionResult{Success: true, Message: cat.Get("passwordResetSent")}
}

// ResetPassword sets a new password from a reset-link token.
func (a *Auth) ResetPassword(ctx context.Context, cat messages.Catalog, req models.ResetPasswordRequest) *models.ActionResult {
	fieldErrors := map[string][]string{}

	a.requirePassword(cat, req.Password, fieldErrors)
	if req.Password != req.ConfirmPassword {
		fieldErrors["confirmPassword"] = append(fieldErrors["confirmPassword"], cat.Get("passwordMismatch"))
	}
	if len(fieldErrors) > 0 {
		return failure(cat.Get("serverError"), fieldErrors, nil)
	}

	user, err := a.store.FindByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return failure(cat.Get("tokenInvalid"), nil, nil)
		}
		a.logger.Printf("reset token lookup failed: %v", err)
		return serverError(cat, nil)
	}
	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return failure(cat.Get("tokenInvalid"), nil, nil)
	}

	return a.applyNewPassword(ctx, cat, user.Email, req.Password)
}

// SendOTP generates a six-digit recovery code, stores it with its expiry and
// mails it to the account.
func (a *Auth) SendOTP(ctx context.Context, cat messages.Catalog, req models.SendOTPRequest) *models.ActionResult {
	values := map[string]string{"email": req.Email}
	fieldErrors := map[string][]string{}

	email, _ := a.requireEmail(cat, req.Email, fieldErrors)
	if len(fieldErrors) > 0 {
		return failure(cat.Get("serverError"), fieldErrors, values)
	}

	if _, err := a.findUser(ctx, cat, email, fieldErrors, values); err != nil {
		return failure(cat.Get("serverError"), fieldErrors, values)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		a.logger.Printf("OTP generation failed: %v", err)
		return serverError(cat, values)
	}

	otp := models.OTPInfo{Code: code, ExpiresAt: time.Now().Add(utils.OTPExpiry)}
	if err := a.store.SetOTP(ctx, email, otp); err != nil {
		a.logger.Printf("storing OTP failed for %s: %v", email, err)
		return serverError(cat, values)
	}

	if a.mailer == nil {
		a.logger.Printf("no mailer configured, OTP for %s: %s", email, code)
	} else if err := a.mailer.SendOTP(email, code); err != nil {
		a.logger.Printf("sending OTP to %s failed: %v", email, err)
		return serverError(cat, values)
	}

	return &models.ActionResult{Success: true, Message: cat.Get("otpSent")}
}

// VerifyOTP checks a submitted recovery code and consumes it on success, so
// a code never verifies twice. A wrong code reads as invalid even when the
// stored one has expired; only a matching stale code reads as expired.
func (a *Auth) VerifyOTP(ctx context.Context, cat messages.Catalog, req models.VerifyOTPRequest) *models.ActionResult {
	values := map[string]string{"email": req.Email}
	fieldErrors := map[string][]string{}

	email, _ := a.requireEmail(cat, req.Email, fieldErrors)
	if req.OTP == "" {
		fieldErrors["code"] = append(fieldErrors["code"], cat.Get("otpRequired"))
	}
	if len(fieldErrors) > 0 {
		return failure(cat.Get("serverError"), fieldErrors, values)
	}

	user, err := a.findUser(ctx, cat, email, fieldErrors, values)
	if err != nil {
		return failure(cat.Get("serverError"), fieldErrors, values)
	}

	if user.OTPInfo == nil || user.OTPInfo.Code != req.OTP {
		fieldErrors["code"] = append(fieldErrors["code"], cat.Get("otpInvalid"))
		return failure(cat.Get("otpInvalid"), fieldErrors, values)
	}
	if time.Now().After(user.OTPInfo.ExpiresAt) {
		fieldErrors["code"] = append(fieldErrors["code"], cat.Get("otpExpired"))
		return failure(cat.Get("otpExpired"), fieldErrors, values)
	}

	// single use: the verified code is gone before the caller sees success
	if err := a.store.ClearOTP(ctx, email); err != nil {
		a.logger.Printf("clearing OTP failed for %s: %v", email, err)
		return serverError(cat, values)
	}

	return &models.ActionResult{Success: true, Message: cat.Get("otpVerified")}
}

// ResetPasswordByOTP sets a new password after OTP verification. The slot is
// cleared again here in case a stale code survived the verify step.
func (a *Auth) ResetPasswordByOTP(ctx context.Context, cat messages.Catalog, req models.ResetPasswordByOTPRequest) *models.ActionResult {
	values := map[string]string{"email": req.Email}
	fieldErrors := map[string][]string{}

	email, _ := a.requireEmail(cat, req.Email, fieldErrors)
	a.requirePassword(cat, req.Password, fieldErrors)
	if req.Password != req.ConfirmPassword {
		fieldErrors["confirmPassword"] = append(fieldErrors["confirmPassword"], cat.Get("passwordMismatch"))
	}
	if len(fieldErrors) > 0 {
		return failure(cat.Get("serverError"), fieldErrors, values)
	}

	if _, err := a.findUser(ctx, cat, email, fieldErrors, values); err != nil {
		return failure(cat.Get("serverError"), fieldErrors, values)
	}

	result := a.applyNewPassword(ctx, cat, email, req.Password)
	if result.Success {
		if err := a.store.ClearOTP(ctx, email); err != nil {
			a.logger.Printf("clearing OTP failed for %s: %v", email, err)
		}
	}
	return result
}

func (a *Auth) applyNewPassword(ctx context.Context, cat messages.Catalog, email, password string) *models.ActionResult {
	hash, err := utils.HashPassword(password)
	if err != nil {
		a.logger.Printf("password hashing failed: %v", err)
		return serverError(cat, nil)
	}
	if err := a.store.UpdatePassword(ctx, email, hash); err != nil {
		a.logger.Printf("password update failed for %s: %v", email, err)
		return serverError(cat, nil)
	}
	return &models.ActionResult{Success: true, Message: cat.Get("passwordResetSuccess")}
}

func (a *Auth) findUser(ctx context.Context, cat messages.Catalog, email string, fieldErrors map[string][]string, values map[string]string) (*models.User, error) {
	user, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			fieldErrors["email"] = append(fieldErrors["email"], cat.Get("emailNotFound"))
			return nil, err
		}
		a.logger.Printf("user lookup failed for %s: %v", email, err)
		fieldErrors["email"] = append(fieldErrors["email"], cat.Get("serverError"))
		return nil, err
	}
	return user, nil
}

func (a *Auth) requireEmail(cat messages.Catalog, raw string, fieldErrors map[string][]string) (string, error) {
	if raw == "" {
		fieldErrors["email"] = append(fieldErrors["email"], cat.Get("emailRequired"))
		return "", errors.New("email required")
	}
	email, err := utils.SanitizeEmail(raw)
	if err != nil {
		fieldErrors["email"] = append(fieldErrors["email"], cat.Get("emailInvalid"))
		return "", err
	}
	return email, nil
}

func (a *Auth) requirePassword(cat messages.Catalog, password string, fieldErrors map[string][]string) {
	switch {
	case password == "":
		fieldErrors["password"] = append(fieldErrors["password"], cat.Get("passwordRequired"))
	case len(password) < 8:
		fieldErrors["password"] = append(fieldErrors["password"], cat.Get("passwordMinLength"))
	case !utils.IsStrongPassword(password):
		fieldErrors["password"] = append(fieldErrors["password"], cat.Get("passwordWeak"))
	}
}

func failure(message string, fieldErrors map[string][]string, values map[string]string) *models.ActionResult {
	if len(fieldErrors) == 0 {
		fieldErrors = nil
	}
	return &models.ActionResult{Message: message, Errors: fieldErrors, Values: values}
}

func serverError(cat messages.Catalog, values map[string]string) *models.ActionResult {
	return &models.ActionResult{Message: cat.Get("serverError"), Values: values}
}
