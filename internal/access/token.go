package access

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/avoshchina/tutorhub/internal/apperr"
)

// TokenVerifier checks bearer tokens issued by the external identity
// provider. Only HS256 verification is in scope; token issuance, refresh and
// login UI belong to the provider.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses the token and returns the subject user ID.
func (v *TokenVerifier) Verify(raw string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperr.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.ErrUnauthorized
	}

	return userID, nil
}
