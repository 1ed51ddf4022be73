// Package invite implements team invitations: signed invitation tokens,
// the invitation email content and the short links mailed to invitees.
package invite

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baatolabs/baatometrics-api/internal/domain/team"
)

// TokenTTL is how long an invitation stays valid
const TokenTTL = 7 * 24 * time.Hour

// Claims carries the invitation details inside the signed token
type Claims struct {
	Email   string    `json:"email"`
	Role    team.Role `json:"role"`
	Inviter string    `json:"inviter"`
	jwt.RegisteredClaims
}

// NewToken signs an invitation token for the given address and role
func NewToken(secret, email string, role team.Role, inviterName string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:   email,
		Role:    role,
		Inviter: inviterName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign invitation token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a token and returns its invitation claims
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid invitation token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid invitation token")
	}
	return claims, nil
}
