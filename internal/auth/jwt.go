package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpirationTime is how long a session token is valid (24 hours)
const TokenExpirationTime = 24 * time.Hour

// Claims represents JWT claims bound to a verified phone identity
type Claims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed session token for a verified phone.
// The caller supplies the issuance instant so token lifetimes follow the
// injected clock rather than the ambient one.
func GenerateToken(phone, secret string, now time.Time) (string, int, error) {
	expirationTime := now.Add(TokenExpirationTime)

	claims := &Claims{
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}

	expiresIn := int(TokenExpirationTime.Seconds())
	return tokenString, expiresIn, nil
}

// ValidateToken validates a session token and returns the bound phone
func ValidateToken(tokenString, secret string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", errors.New("invalid token")
	}

	return claims.Phone, nil
}
