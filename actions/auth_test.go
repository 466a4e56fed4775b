package actions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lykr/lykr_backend/messages"
	"github.com/lykr/lykr_backend/models"
	"github.com/lykr/lykr_backend/utils"
)

type fakeStore struct {
	users   map[string]*models.User
	otpSets int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*models.User{}}
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeStore) SetResetToken(_ context.Context, email, token string, expiresAt time.Time) error {
	f.users[email].ResetToken = token
	f.users[email].ResetTokenExpiresAt = &expiresAt
	return nil
}

func (f *fakeStore) FindByResetToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range f.users {
		if u.ResetToken == token && token != "" {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) SetOTP(_ context.Context, email string, otp models.OTPInfo) error {
	f.otpSets++
	f.users[email].OTPInfo = &otp
	return nil
}

func (f *fakeStore) ClearOTP(_ context.Context, email string) error {
	f.users[email].OTPInfo = nil
	return nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, email, hash string) error {
	f.users[email].Password = hash
	f.users[email].ResetToken = ""
	f.users[email].ResetTokenExpiresAt = nil
	return nil
}

type recordingMailer struct {
	otps   []string
	links  []string
	target string
}

func (m *recordingMailer) SendOTP(to, code string) error {
	m.target = to
	m.otps = append(m.otps, code)
	return nil
}

func (m *recordingMailer) SendResetLink(to, token string) error {
	m.target = to
	m.links = append(m.links, token)
	return nil
}

var en = messages.ForLocale("en")

func registered(t *testing.T, store *fakeStore, email, password string) {
	t.Helper()
	auth := NewAuth(store, nil)
	res := auth.Register(context.Background(), en, models.RegisterRequest{
		Name:            "Test User",
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.True(t, res.Success, res.Message)
}

func TestRegisterValidation(t *testing.T) {
	auth := NewAuth(newFakeStore(), nil)

	res := auth.Register(context.Background(), en, models.RegisterRequest{
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, "name")
	assert.Contains(t, res.Errors, "email")
	assert.Contains(t, res.Errors, "password")
	assert.Contains(t, res.Errors, "confirmPassword")

	// submitted values echoed back, passwords never
	assert.Equal(t, "not-an-email", res.Values["email"])
	assert.NotContains(t, res.Values, "password")
	assert.NotContains(t, res.Values, "confirmPassword")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")

	auth := NewAuth(store, nil)
	res := auth.Register(context.Background(), en, models.RegisterRequest{
		Name:            "Other",
		Email:           "user@example.com",
		Password:        "Sup3rSecret",
		ConfirmPassword: "Sup3rSecret",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Errors["email"], en.Get("emailExists"))
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")

	u := store.users["user@example.com"]
	assert.NotEqual(t, "Sup3rSecret", u.Password)
	assert.True(t, utils.CheckPasswordHash("Sup3rSecret", u.Password))
}

func TestLogin(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")
	auth := NewAuth(store, nil)

	res, user := auth.Login(context.Background(), en, models.LoginRequest{
		Email: "user@example.com", Password: "Sup3rSecret",
	})
	require.True(t, res.Success)
	require.NotNil(t, user)
	assert.Equal(t, "user@example.com", user.Email)

	res, user = auth.Login(context.Background(), en, models.LoginRequest{
		Email: "user@example.com", Password: "wrong",
	})
	assert.False(t, res.Success)
	assert.Nil(t, user)
	assert.Equal(t, en.Get("invalidCredentials"), res.Message)

	// unknown account reads the same as a wrong password
	res, _ = auth.Login(context.Background(), en, models.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})
	assert.Equal(t, en.Get("invalidCredentials"), res.Message)
}

func TestLoginOAuthOnlyAccount(t *testing.T) {
	store := newFakeStore()
	store.users["oauth@example.com"] = &models.User{Email: "oauth@example.com", GoogleID: "g-123"}
	auth := NewAuth(store, nil)

	res, user := auth.Login(context.Background(), en, models.LoginRequest{
		Email: "oauth@example.com", Password: "anything",
	})
	assert.False(t, res.Success)
	assert.Nil(t, user)
}

func TestSendAndVerifyOTP(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")
	mailer := &recordingMailer{}
	auth := NewAuth(store, mailer)

	res := auth.SendOTP(context.Background(), en, models.SendOTPRequest{Email: "user@example.com"})
	require.True(t, res.Success)
	require.Len(t, mailer.otps, 1)
	assert.Len(t, mailer.otps[0], 6)
	assert.Equal(t, "user@example.com", mailer.target)

	res = auth.VerifyOTP(context.Background(), en, models.VerifyOTPRequest{
		Email: "user@example.com", OTP: mailer.otps[0],
	})
	assert.True(t, res.Success)

	res = auth.VerifyOTP(context.Background(), en, models.VerifyOTPRequest{
		Email: "user@example.com", OTP: "000000",
	})
	assert.False(t, res.Success)
	assert.Equal(t, en.Get("otpInvalid"), res.Message)
}

func TestVerifyOTPSingleUse(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")
	store.users["user@example.com"].OTPInfo = &models.OTPInfo{
		Code: "123456", ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	auth := NewAuth(store, nil)

	res := auth.VerifyOTP(context.Background(), en, models.VerifyOTPRequest{
		Email: "user@example.com", OTP: "123456",
	})
	require.True(t, res.Success)
	assert.Nil(t, store.users["user@example.com"].OTPInfo, "verified code is consumed")

	// the same code cannot verify a second time
	res = auth.VerifyOTP(context.Background(), en, models.VerifyOTPRequest{
		Email: "user@example.com", OTP: "123456",
	})
	assert.False(t, res.Success)
	assert.Equal(t, en.Get("otpInvalid"), res.Message)
}

func TestSendOTPUnknownEmail(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")
	mailer := &recordingMailer{}
	auth := NewAuth(store, mailer)

	res := auth.SendOTP(context.Background(), en, models.SendOTPRequest{Email: "ghost@example.com"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors["email"], en.Get("emailNotFound"))

	// nothing was stored or mailed
	assert.Zero(t, store.otpSets)
	assert.Nil(t, store.users["user@example.com"].OTPInfo)
	assert.Empty(t, mailer.otps)
}

func TestVerifyOTPWrongCodeBeatsExpiry(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")
	expired := time.Now().Add(-time.Minute)
	store.users["user@example.com"].OTPInfo = &models.OTPInfo{Code: "123456", ExpiresAt: expired}
	auth := NewAuth(store, nil)

	// a wrong code reads invalid even though the stored one expired
	res := auth.VerifyOTP(context.Background(), en, models.VerifyOTPRequest{
		Email: "user@example.com", OTP: "654321",
	})
	assert.Equal(t, en.Get("otpInvalid"), res.Message)

	// the matching stale code reads expired
	res = auth.VerifyOTP(context.Background(), en, models.VerifyOTPRequest{
		Email: "user@example.com", OTP: "123456",
	})
	assert.Equal(t, en.Get("otpExpired"), res.Message)
}

func TestVerifyOTPWithoutSend(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")
	auth := NewAuth(store, nil)

	res := auth.VerifyOTP(context.Background(), en, models.VerifyOTPRequest{
		Email: "user@example.com", OTP: "123456",
	})
	assert.False(t, res.Success)
	assert.Equal(t, en.Get("otpInvalid"), res.Message)
}

func TestResetPasswordByOTPConsumesCode(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")
	store.users["user@example.com"].OTPInfo = &models.OTPInfo{
		Code: "123456", ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	auth := NewAuth(store, nil)

	res := auth.ResetPasswordByOTP(context.Background(), en, models.ResetPasswordByOTPRequest{
		Email: "user@example.com", Password: "N3wSecret99", ConfirmPassword: "N3wSecret99",
	})
	require.True(t, res.Success)

	u := store.users["user@example.com"]
	assert.True(t, utils.CheckPasswordHash("N3wSecret99", u.Password))
	assert.Nil(t, u.OTPInfo, "code is single use")
}

func TestForgotPasswordFlow(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")
	mailer := &recordingMailer{}
	auth := NewAuth(store, mailer)

	res := auth.ForgotPassword(context.Background(), en, models.ForgotPasswordRequest{Email: "user@example.com"})
	require.True(t, res.Success)
	require.Len(t, mailer.links, 1)

	res = auth.ResetPassword(context.Background(), en, models.ResetPasswordRequest{
		Token: mailer.links[0], Password: "N3wSecret99", ConfirmPassword: "N3wSecret99",
	})
	require.True(t, res.Success)
	assert.True(t, utils.CheckPasswordHash("N3wSecret99", store.users["user@example.com"].Password))

	// token is cleared after use
	res = auth.ResetPassword(context.Background(), en, models.ResetPasswordRequest{
		Token: mailer.links[0], Password: "An0therOne1", ConfirmPassword: "An0therOne1",
	})
	assert.False(t, res.Success)
	assert.Equal(t, en.Get("tokenInvalid"), res.Message)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	auth := NewAuth(newFakeStore(), nil)

	res := auth.ForgotPassword(context.Background(), en, models.ForgotPasswordRequest{Email: "ghost@example.com"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors["email"], en.Get("emailNotFound"))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	store := newFakeStore()
	registered(t, store, "user@example.com", "Sup3rSecret")
	expired := time.Now().Add(-time.Minute)
	store.users["user@example.com"].ResetToken = "stale-token"
	store.users["user@example.com"].ResetTokenExpiresAt = &expired
	auth := NewAuth(store, nil)

	res := auth.ResetPassword(context.Background(), en, models.ResetPasswordRequest{
		Token: "stale-token", Password: "N3wSecret99", ConfirmPassword: "N3wSecret99",
	})
	assert.False(t, res.Success)
	assert.Equal(t, en.Get("tokenInvalid"), res.Message)
}

func TestArabicCatalogMessages(t *testing.T) {
	ar := messages.ForLocale("ar")
	auth := NewAuth(newFakeStore(), nil)

	res, _ := auth.Login(context.Background(), ar, models.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})
	assert.Equal(t, ar.Get("invalidCredentials"), res.Message)
	assert.NotEqual(t, en.Get("invalidCredentials"), res.Message)
}
