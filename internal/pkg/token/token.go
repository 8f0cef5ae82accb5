package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("token is invalid")

// Claims carried by an access token. Subject is the user's email.
type Claims struct {
	UserID   uint   `json:"user_id"`
	UserType string `json:"user_type"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// Generate produces a signed access token for the given user.
func Generate(email string, userID uint, userType, fullName, secret string, expiryMinutes int) (string, error) {
	claims := Claims{
		UserID:   userID,
		UserType: userType,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "linka-backend",
			Subject:   email,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Validate reports whether the token is well-formed, correctly signed and
// not expired. Malformed, tampered and expired tokens all come back false;
// callers are never told which, so the response cannot be used as an oracle.
func Validate(tokenString, secret string) bool {
	_, err := parse(tokenString, secret)
	return err == nil
}

// ExtractEmail returns the subject claim. Only meaningful after Validate
// has returned true for the same token.
func ExtractEmail(tokenString, secret string) (string, error) {
	claims, err := parse(tokenString, secret)
	if err != nil {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// ParseClaims returns all claims of a valid token.
func ParseClaims(tokenString, secret string) (*Claims, error) {
	claims, err := parse(tokenString, secret)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func parse(tokenString, secret string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
