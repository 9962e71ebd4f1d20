package auth

import (
	"context"
	"testing"
	"time"

	"pestcontrol/models"
	"pestcontrol/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*DefaultAuthService, *utils.JWTVerifier) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	verifier := utils.NewJWTVerifier("test-secret", time.Hour)
	return NewDefaultAuthService(AdminAccount{ID: "admin-1", Email: "owner@example.com", PasswordHash: string(hash)}, verifier), verifier
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, verifier := newAuthService(t)

	resp, err := svc.Login(context.Background(), " Owner@Example.com ", "s3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	claims, err := verifier.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.AdminClaims{AdminID: "admin-1", Email: "owner@example.com", Role: models.RoleAdmin}, *claims)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "owner@example.com", "wrong")
	assert.Equal(t, utils.KindAuth, utils.KindOf(err))

	_, err = svc.Login(ctx, "someone@example.com", "s3cret!")
	assert.Equal(t, utils.KindAuth, utils.KindOf(err))
}

func TestLoginWithoutConfiguredAdmin(t *testing.T) {
	svc := NewDefaultAuthService(AdminAccount{}, utils.NewJWTVerifier("x", time.Hour))
	_, err := svc.Login(context.Background(), "", "")
	assert.Equal(t, utils.KindAuth, utils.KindOf(err))
}
