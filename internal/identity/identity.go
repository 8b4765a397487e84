// Package identity verifies bearer credentials and yields the stable subject
// identifier every metadata operation is scoped by.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/securedoc-app/securedoc/internal/config"
)

var (
	// ErrUnauthenticated means no credential was presented.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidToken means a credential was presented but did not verify.
	ErrInvalidToken = errors.New("invalid token")
)

// User is the verified identity behind a request.
type User struct {
	Sub   string `json:"sub"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Verifier turns a raw bearer token into a User.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

type cognitoVerifier struct {
	issuer string
	keys   keyfunc.Keyfunc
}

// NewCognitoVerifier builds a Verifier against a Cognito user pool's JWKS.
// Key material is fetched and refreshed by keyfunc in the background.
func NewCognitoVerifier(ctx context.Context, cfg *config.Config) (Verifier, error) {
	issuer := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", cfg.Auth.Region, cfg.Auth.UserPoolID)

	keys, err := keyfunc.NewDefaultCtx(ctx, []string{issuer + "/.well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("load jwks: %w", err)
	}

	return &cognitoVerifier{issuer: issuer, keys: keys}, nil
}

func (v *cognitoVerifier) Verify(_ context.Context, raw string) (*User, error) {
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	token, err := jwt.Parse(raw, v.keys.Keyfunc,
		jwt.WithIssuer(v.issuer),
		jwt.WithValidMethods([]string{"RS256"}),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return &User{Sub: sub, Email: email, Name: name}, nil
}
