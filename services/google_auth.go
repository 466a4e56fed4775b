package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"google.golang.org/api/idtoken"
)

// GoogleAuthService verifies Google ID tokens.
type GoogleAuthService struct {
	clientID string
}

// GoogleUser is the identity extracted from a verified ID token.
type GoogleUser struct {
	Email       string
	DisplayName string
	PhotoURL    string
	GoogleID    string
}

// NewGoogleAuthService creates a new Google auth service
func NewGoogleAuthService() *GoogleAuthService {
	return &GoogleAuthService{
		clientID: os.Getenv("GOOGLE_CLIENT_ID"),
	}
}

// VerifyIDToken validates the signed ID token against Google's keys and
// returns the identity it carries.
func (s *GoogleAuthService) VerifyIDToken(ctx context.Context, rawToken string) (*GoogleUser, error) {
	if rawToken == "" {
		return nil, errors.New("id token is required")
	}
	if s.clientID == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	payload, err := idtoken.Validate(ctx, rawToken, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify Google token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("token carries no email claim")
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, errors.New("Google account email is not verified")
	}

	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &GoogleUser{
		Email:       email,
		DisplayName: name,
		PhotoURL:    picture,
		GoogleID:    payload.Subject,
	}, nil
}
