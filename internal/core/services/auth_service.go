package services

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils"
)

// authService authenticates the single administrator configured for this deployment.
type authService struct {
	BaseService
	username     string
	passwordHash string
	jwtSecret    string
	jwtExpiry    time.Duration
	jwtIssuer    string
}

func NewAuthService(cfg *config.Config, options ...ServiceOption) portssvc.AuthService {
	return &authService{
		BaseService:  newBaseService(options),
		username:     cfg.AdminUsername,
		passwordHash: cfg.AdminPasswordHash,
		jwtSecret:    cfg.JWTSecret,
		jwtExpiry:    cfg.JWTExpiryDuration,
		jwtIssuer:    cfg.JWTIssuer,
	}
}

var _ portssvc.AuthService = (*authService)(nil)

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passOK := utils.CheckPasswordHash(password, s.passwordHash)
	if !userOK || !passOK {
		s.LogWarn(ctx, "Rejected login attempt", slog.String("username", username))
		return "", time.Time{}, apperrors.NewAppError(apperrors.ErrUnauthorized, "invalid username or password")
	}

	token, expiresAt, err := utils.GenerateJWT(s.username, s.jwtSecret, s.jwtExpiry, s.jwtIssuer, s.Clock())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", time.Time{}, err
	}
	s.LogInfo(ctx, "Administrator logged in", slog.String("username", username))
	return token, expiresAt, nil
}
