package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the decoded identity passed explicitly into handlers and
// services. Role is super_admin or admin; LodgeID is set only for
// lodge-scoped admins.
type AuthClaims struct {
	UserID  uint
	Email   string
	Role    string
	LodgeID *uint
}

// SuperAdmin reports whether the caller sees all lodges.
func (a *AuthClaims) SuperAdmin() bool {
	return a != nil && a.Role == "super_admin"
}

// NewAccessToken signs an HS256 JWT carrying the user's id, email, role and
// optional lodge scope. ttl controls the exp claim.
func NewAccessToken(secret string, user AuthClaims, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":   float64(user.UserID),
		"email": user.Email,
		"role":  user.Role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	if user.LodgeID != nil {
		claims["lodge_id"] = float64(*user.LodgeID)
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken validates the token signature and expiry and returns the
// decoded claims.
func ParseAccessToken(secret, raw string) (*AuthClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	out := &AuthClaims{}
	if sub, ok := mc["sub"].(float64); ok {
		out.UserID = uint(sub)
	}
	if email, ok := mc["email"].(string); ok {
		out.Email = email
	}
	if role, ok := mc["role"].(string); ok {
		out.Role = role
	}
	if lid, ok := mc["lodge_id"].(float64); ok {
		id := uint(lid)
		out.LodgeID = &id
	}
	if out.UserID == 0 || out.Role == "" {
		return nil, errors.New("incomplete claims")
	}
	return out, nil
}
