package services

import (
	"fmt"
	"time"

	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "frame-nest"

type JWTService struct {
	secret       []byte
	accessExpiry time.Duration
}

// Claims carries the caller principal in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) Principal() models.Principal {
	return models.Principal(c.Subject)
}

type AccessToken struct {
	Token     string
	ExpiresIn int64
}

func NewJWTService(secret string, accessExpiry time.Duration) *JWTService {
	return &JWTService{
		secret:       []byte(secret),
		accessExpiry: accessExpiry,
	}
}

func (s *JWTService) GenerateAccessToken(principal models.Principal) (*AccessToken, error) {
	if err := ValidatePrincipal(principal); err != nil {
		return nil, err
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   string(principal),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &AccessToken{
		Token:     signed,
		ExpiresIn: int64(s.accessExpiry.Seconds()),
	}, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if err := ValidatePrincipal(claims.Principal()); err != nil {
		return nil, fmt.Errorf("invalid subject in token: %w", err)
	}

	return claims, nil
}

func (s *JWTService) AccessExpiry() time.Duration {
	return s.accessExpiry
}
