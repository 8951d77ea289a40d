package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity provider claims this service relies on: the stable
// subject id and the account email.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier authenticates bearer credentials issued by the identity
// provider. This service never mints identity tokens; it only verifies them
// against the shared HMAC secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Configured reports whether a verification secret is present.
func (s *JWTVerifier) Configured() bool {
	return len(s.secret) > 0
}

// Verify parses and validates the token, returning its claims.
func (s *JWTVerifier) Verify(tokenString string) (*Claims, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("identity verification secret is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	return claims, nil
}
