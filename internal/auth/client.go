// ABOUTME: This file validates bearer tokens and resolves them to a user identity.
// ABOUTME: Tokens are HS256 JWTs carrying the user id in the subject claim.
package auth

import (
	"context"
	"fmt"

	"news-explainer/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserContext is the identity a validated token resolves to.
type UserContext struct {
	UserID uuid.UUID
	Email  string
}

// Client validates tokens issued by the identity provider.
type Client struct {
	secret []byte
	issuer string
}

// NewClient creates a token validator for the given signing secret.
// The issuer check is skipped when issuer is empty.
func NewClient(secret, issuer string) *Client {
	return &Client{secret: []byte(secret), issuer: issuer}
}

type userClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ValidateUserToken parses and verifies a bearer token and returns the user
// it identifies. Every failure maps to ErrUnauthenticated so callers never
// leak verification details.
func (c *Client) ValidateUserToken(ctx context.Context, token string) (*UserContext, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrUnauthenticated)
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if c.issuer != "" {
		options = append(options, jwt.WithIssuer(c.issuer))
	}

	claims := &userClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", domain.ErrUnauthenticated)
	}

	return &UserContext{UserID: userID, Email: claims.Email}, nil
}
