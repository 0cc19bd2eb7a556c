package middleware

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned when JWT validation fails due to expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for signature, format and algorithm failures.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenMissingClaim is returned when sub is absent or not a UUID.
	ErrTokenMissingClaim = errors.New("token missing required claim")
)

// Validator resolves a bearer token to the owner ID it was issued for.
type Validator interface {
	Validate(tokenString string) (string, error)
}

// JWTValidator checks HS256 tokens signed with a shared secret.
type JWTValidator struct {
	secret []byte
	parser *jwt.Parser
}

var _ Validator = (*JWTValidator)(nil)

func NewJWTValidator(secret string) (*JWTValidator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &JWTValidator{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Validate returns the token's subject, which must be a UUID.
func (v *JWTValidator) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: sub", ErrTokenMissingClaim)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: sub is not a UUID", ErrTokenMissingClaim)
	}
	return claims.Subject, nil
}
