// Package auth turns bearer tokens into user identities.
package auth

import (
	"context"
	"fmt"
	"pair-chat/contract"
	"pair-chat/domain/chat"
	"pair-chat/errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	// RoleRelay is held by upstream services allowed to push external events.
	RoleRelay = "relay"
)

const minSecretLength = 32

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID string   `json:"user_id" validate:"required,max=256"`
	Roles  []string `json:"roles" validate:"dive,oneof=user admin relay"`
	jwt.RegisteredClaims
}

// JWTValidator issues and checks HS256 tokens for one issuer.
type JWTValidator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	parser *jwt.Parser
}

var _ contract.IdentityValidator = (*JWTValidator)(nil)

func NewJWTValidator(secret, issuer string, ttl time.Duration) (*JWTValidator, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("%w: jwt secret must be at least %d bytes", errors.ErrValidation, minSecretLength)
	}
	return &JWTValidator{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// GenerateToken creates a signed JWT for a specific user.
func (v *JWTValidator) GenerateToken(userID chat.UserID, roles ...string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: string(userID),
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    v.issuer,
			Subject:   string(userID),
		},
	}
	if err := ValidateClaims(claims); err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Parse checks signature, issuer and expiry. Every failure is ErrAuth.
func (v *JWTValidator) Parse(tokenString string) (*CustomClaims, error) {
	token, err := v.parser.ParseWithClaims(tokenString, &CustomClaims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrAuth, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: %w", errors.ErrAuth, jwt.ErrSignatureInvalid)
	}
	if err := ValidateClaims(claims); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrAuth, err)
	}
	return claims, nil
}

func (v *JWTValidator) Validate(_ context.Context, claim string) (chat.UserID, error) {
	claims, err := v.Parse(claim)
	if err != nil {
		return "", err
	}
	return chat.UserID(claims.UserID), nil
}

// Authorize is Parse plus a role check; a valid token without the role is ErrPermission.
func (v *JWTValidator) Authorize(tokenString, role string) (*CustomClaims, error) {
	claims, err := v.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(claims.Roles, role) {
		return nil, fmt.Errorf("%w: role %s required", errors.ErrPermission, role)
	}
	return claims, nil
}
