package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	id "enquiries/pkg/domain"
)

// HS256Validator validates HMAC-signed tokens issued by the council SSO
// gateway. The subject claim carries the officer ID.
type HS256Validator struct {
	secret   []byte
	issuer   string
	audience string
}

// NewHS256Validator creates a validator for the given shared secret.
// Issuer and audience are enforced when non-empty.
func NewHS256Validator(secret []byte, issuer, audience string) *HS256Validator {
	return &HS256Validator{secret: secret, issuer: issuer, audience: audience}
}

type tokenClaims struct {
	DisplayName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken parses and verifies the token, returning the officer claims.
func (v *HS256Validator) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	officerID, err := id.ParseOfficerID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	return &Claims{
		OfficerID:   officerID,
		DisplayName: claims.DisplayName,
	}, nil
}
