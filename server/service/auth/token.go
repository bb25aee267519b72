package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/orgai/hr-assistant/store"
)

const (
	// SessionTokenDuration is the lifetime of a session token.
	SessionTokenDuration = 24 * time.Hour

	tokenIssuer = "hr-assistant"
)

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	Email string `json:"email"`
	EmpID int32  `json:"emp_id"`
	jwt.RegisteredClaims
}

// NewSessionToken signs a session token for the employee.
func NewSessionToken(employee *store.Employee, secret string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Email: employee.Email,
		EmpID: employee.EmpID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprintf("%d", employee.EmpID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// VerifySessionToken parses and validates a session token, returning
// its claims.
func VerifySessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "invalid session token")
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
