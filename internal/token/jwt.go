package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/attendance-server/internal/model"
)

// Claims are the access token claims issued by the campus auth service. The
// numeric subject ID travels in the standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey, ttl: accessTTL}
}

const (
	accessTTL  = 15 * time.Minute
	typeAccess = "access"
)

// GenerateAccessToken creates a short-lived access token for the subject.
func (j *JWT) GenerateAccessToken(subjectID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates the token and returns its subject ID.
func (j *JWT) ParseAccessToken(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("access token is invalid")
	}
	if claims.TokenType != typeAccess {
		return 0, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}

	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || subjectID <= 0 {
		return 0, fmt.Errorf("invalid subject claim %q", claims.Subject)
	}
	return subjectID, nil
}
