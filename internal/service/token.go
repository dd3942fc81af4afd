package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"panel/internal/models"
)

// tokenTTL is the fixed bearer token lifetime. There is no revocation: a
// token stays valid until this expiry even after a password change.
const tokenTTL = time.Hour

// TokenService issues and verifies signed bearer tokens. Verification is a
// pure local operation; no storage is involved.
type TokenService struct {
	secret []byte
}

// NewTokenService requires a non-empty secret; the caller treats an empty
// one as a fatal configuration error before ever reaching this point.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Issue produces a signed token carrying the identity claim, expiring a
// fixed duration from now.
func (s *TokenService) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the embedded identity.
// An expired token is reported distinctly from a tampered or malformed one.
func (s *TokenService) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
