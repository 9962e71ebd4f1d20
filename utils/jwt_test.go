package utils

import (
	"testing"
	"time"

	"pestcontrol/models"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifierRoundTrip(t *testing.T) {
	v := NewJWTVerifier("test-secret", time.Hour)
	admin := models.AdminClaims{AdminID: "admin-1", Email: "owner@example.com", Role: models.RoleAdmin}

	token, exp, err := v.GenerateToken(admin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, admin, *got)
}

func TestJWTVerifierRejects(t *testing.T) {
	v := NewJWTVerifier("test-secret", time.Hour)

	other, _, err := NewJWTVerifier("other-secret", time.Hour).GenerateToken(models.AdminClaims{AdminID: "a", Role: models.RoleAdmin})
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		msg   string
	}{
		{"empty", "", "missing token"},
		{"garbage", "not-a-jwt", "invalid token"},
		{"wrong secret", other, "invalid token"},
		{"expired", expired, "token expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			require.Error(t, err)
			assert.Equal(t, KindAuth, KindOf(err))
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}
