package jwt

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dhruvil1809/ecommerce-backend/internal/apperrors"
)

type Claims struct {
	UserID    uint   `json:"userId"`
	UserEmail string `json:"email"`
	Type      string `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenExpiry  = 15 * time.Minute
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"-"`
}

func getSecret() (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not configured")
	}
	return secret, nil
}

func GenerateToken(userID uint, tokenType, email string, expiration time.Duration) (string, error) {
	if tokenType != TokenTypeAccess && tokenType != TokenTypeRefresh {
		return "", fmt.Errorf("unknown token type %q", tokenType)
	}
	secret, err := getSecret()
	if err != nil {
		return "", err
	}

	claims := &Claims{
		UserID:    userID,
		UserEmail: email,
		Type:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "ecommerce-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// GeneratePair issues the access/refresh token pair returned on register
// and login.
func GeneratePair(userID uint, email string) (*TokenPair, error) {
	access, err := GenerateToken(userID, TokenTypeAccess, email, AccessTokenExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := GenerateToken(userID, TokenTypeRefresh, email, RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func ValidateToken(tokenString string) (*Claims, error) {
	secret, err := getSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, apperrors.AuthenticationRequired
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.AuthenticationRequired
	}

	if claims.Type != TokenTypeAccess && claims.Type != TokenTypeRefresh {
		return nil, apperrors.AuthenticationRequired
	}

	return claims, nil
}

func (c *Claims) IsAccessToken() bool {
	return c.Type == TokenTypeAccess
}

// GetTokenRemainingTTL reports how long a token stays valid; used to size
// the blacklist entry on logout.
func GetTokenRemainingTTL(tokenString string) time.Duration {
	claims := &Claims{}
	_, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims)
	if err != nil || claims.ExpiresAt == nil {
		return 0
	}
	return time.Until(claims.ExpiresAt.Time)
}
