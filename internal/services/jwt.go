package services

import (
	"fmt"
	"time"

	"towers-verifier-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const operatorTokenTTL = 12 * time.Hour

type JWTService struct {
	secret []byte
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret: []byte(cfg.JWTSecret),
	}
}

// GenerateOperatorToken issues a short-lived token for the publish/reveal
// endpoints. Players never need one; verification is public.
func (s *JWTService) GenerateOperatorToken() (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(operatorTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
