package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/lestrrat-go/jwx/jwk"
)

const appleKeysURL = "https://appleid.apple.com/auth/keys"

// AppleAuthService verifies Sign in with Apple identity tokens.
type AppleAuthService struct {
	clientID string
}

// AppleUser is the identity extracted from a verified identity token.
type AppleUser struct {
	Email       string
	AppleUserID string
}

func NewAppleAuthService() *AppleAuthService {
	return &AppleAuthService{
		clientID: os.Getenv("APPLE_CLIENT_ID"),
	}
}

// VerifyIdentityToken checks the token signature against Apple's published
// keys and validates issuer and audience.
func (s *AppleAuthService) VerifyIdentityToken(ctx context.Context, identityToken string) (*AppleUser, error) {
	if identityToken == "" {
		return nil, errors.New("identity token is required")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	keySet, err := jwk.Fetch(ctx, appleKeysURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Apple public keys: %w", err)
	}

	token, err := jwt.Parse(identityToken, func(t *jwt.Token) (interface{}, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok {
			return nil, errors.New("token header missing kid")
		}
		key, found := keySet.LookupKeyID(kid)
		if !found {
			return nil, fmt.Errorf("no Apple key for kid %s", kid)
		}
		var pubKey interface{}
		if err := key.Raw(&pubKey); err != nil {
			return nil, err
		}
		return pubKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify Apple token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid Apple token claims")
	}

	if iss, _ := claims["iss"].(string); iss != "https://appleid.apple.com" {
		return nil, errors.New("unexpected token issuer")
	}
	if s.clientID != "" {
		if aud, _ := claims["aud"].(string); aud != s.clientID {
			return nil, errors.New("token audience mismatch")
		}
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token carries no subject")
	}
	email, _ := claims["email"].(string)

	return &AppleUser{
		Email:       email,
		AppleUserID: sub,
	}, nil
}
