package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"holdco-backend/internal/model"
)

// sessionTTL is how long a bearer token stays valid. There is no refresh:
// a stale token simply fails and the client logs in again.
const sessionTTL = 24 * time.Hour

func jwtSecret() []byte {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return []byte(v)
	}
	return []byte("dev-secret-change-me")
}

// MintToken issues an HS512 session token for a verified user.
func MintToken(u *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(jwtSecret())
}

// Principal is the authenticated identity carried through a request.
type Principal struct {
	UserID string
	Email  string
}

// ParseToken validates a bearer token and returns its principal. Only
// HS512 is accepted.
func ParseToken(tokenStr string) (*Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		if t.Method.Alg() != "HS512" {
			return nil, fmt.Errorf("only HS512 is allowed")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, fmt.Errorf("missing subject")
	}
	return &Principal{UserID: sub, Email: email}, nil
}
