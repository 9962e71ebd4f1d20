package auth

import (
	"context"
	"strings"
	"time"

	"pestcontrol/models"
	"pestcontrol/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs admin tokens.
type TokenIssuer interface {
	GenerateToken(admin models.AdminClaims) (string, time.Time, error)
}

// AdminAccount is the single configured administrator.
type AdminAccount struct {
	ID           string
	Email        string
	PasswordHash string
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AdminLoginResponse, error)
}

type DefaultAuthService struct {
	Admin  AdminAccount
	Tokens TokenIssuer
}

func NewDefaultAuthService(admin AdminAccount, tokens TokenIssuer) *DefaultAuthService {
	return &DefaultAuthService{Admin: admin, Tokens: tokens}
}

var errInvalidCredentials = utils.AuthError("invalid email or password")

// Login checks the credentials against the configured admin and issues a token.
func (s *DefaultAuthService) Login(_ context.Context, email, password string) (*models.AdminLoginResponse, error) {
	logger := utils.GetLogger()

	if s.Admin.Email == "" || s.Admin.PasswordHash == "" {
		logger.Warn("admin login attempted but no admin account is configured")
		return nil, errInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.Admin.Email) {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.Admin.PasswordHash), []byte(password)); err != nil {
		logger.Warn("admin login failed", zap.String("email", s.Admin.Email))
		return nil, errInvalidCredentials
	}

	claims := models.AdminClaims{AdminID: s.Admin.ID, Email: s.Admin.Email, Role: models.RoleAdmin}
	token, exp, err := s.Tokens.GenerateToken(claims)
	if err != nil {
		return nil, err
	}
	logger.Info("admin logged in", zap.String("adminId", s.Admin.ID))
	return &models.AdminLoginResponse{Token: token, ExpiresAt: exp.Unix(), Admin: claims}, nil
}
