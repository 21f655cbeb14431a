// Package auth implements token minting/verification and password hashing
// for the API server.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"letterpal/internal/common"
)

// Claims includes the registered claims plus the authenticated user's ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken mints an HS256 access token for userID valid for
// validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and returns the user ID carried in
// its claims. Expired or malformed tokens yield common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
