package utils

import (
	"errors"
	"fmt"
	"time"

	"pestcontrol/models"

	"github.com/golang-jwt/jwt"
)

// JWTVerifier issues and validates HS256 admin tokens.
type JWTVerifier struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTVerifier returns a verifier signing with secret. Tokens live for ttl.
func NewJWTVerifier(secret string, ttl time.Duration) *JWTVerifier {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTVerifier{secret: []byte(secret), ttl: ttl}
}

// GenerateToken creates a signed token for the admin principal and returns it
// with its expiry.
func (v *JWTVerifier) GenerateToken(admin models.AdminClaims) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(v.ttl)
	claims := jwt.MapClaims{
		"sub":   admin.AdminID,
		"email": admin.Email,
		"role":  admin.Role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses tokenString and returns its admin claims. Every failure is an
// AuthError.
func (v *JWTVerifier) Verify(tokenString string) (*models.AdminClaims, error) {
	if tokenString == "" {
		return nil, AuthError("missing token")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, AuthError("token expired")
		}
		return nil, AuthError("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, AuthError("invalid token")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, AuthError("token does not contain a valid 'sub' claim")
	}
	return &models.AdminClaims{AdminID: sub, Email: email, Role: role}, nil
}
