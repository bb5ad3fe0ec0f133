package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bananabill/internal/config"
	"bananabill/internal/domain"
	"bananabill/internal/port"
)

// mobileRe matches a 10-digit Indian mobile number.
var mobileRe = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// emailDomain is appended to the mobile number to synthesize a stable
// per-user email address.
const emailDomain = "bananabill.app"

// Claims represents the JWT claims carried by both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Mobile string    `json:"mobile"`
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResult bundles the issued tokens with the authenticated user.
type AuthResult struct {
	User   *domain.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// RegisterInput is the DTO for registration requests.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput is the DTO for token refresh requests.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	LoginWithOTP(ctx context.Context, mobile string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
	ResetPassword(ctx context.Context, mobile, newPassword string) error
	ValidateToken(tokenString string) (*Claims, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	userRepo  port.UserRepository
	tokenRepo port.RefreshTokenRepository
	cfg       config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(
	userRepo port.UserRepository,
	tokenRepo port.RefreshTokenRepository,
	cfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !mobileRe.MatchString(input.Mobile) {
		return nil, domain.ErrInvalidMobile
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrWeakPassword
	}

	if _, err := s.userRepo.GetByMobile(ctx, input.Mobile); err == nil {
		return nil, domain.ErrDuplicateMobile
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Mobile:       input.Mobile,
		Email:        input.Mobile + "@" + emailDomain,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if !mobileRe.MatchString(input.Mobile) {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByMobile(ctx, input.Mobile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// LoginWithOTP issues a token pair for a user whose OTP has already been
// verified. The caller is responsible for the OTP check.
func (s *authService) LoginWithOTP(ctx context.Context, mobile string) (*AuthResult, error) {
	user, err := s.userRepo.GetByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.LoginWithOTP: %w", err)
	}
	return s.issue(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. A token that is unknown, revoked, or expired is rejected.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if _, err := s.validateTokenString(refreshToken, "refresh"); err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}

	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenInvalid) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}
	if stored.Revoked || stored.IsExpired() {
		return nil, domain.ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, domain.ErrRefreshTokenInvalid
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}

	result, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	return result.Tokens, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.Revoke(ctx, refreshToken)
	if err != nil && !errors.Is(err, domain.ErrRefreshTokenInvalid) {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	return nil
}

func (s *authService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("auth.LogoutAll: %w", err)
	}
	return nil
}

// ResetPassword replaces the user's password and revokes every active
// session. The caller must have verified a reset_password OTP first.
func (s *authService) ResetPassword(ctx context.Context, mobile, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.ErrWeakPassword
	}

	user, err := s.userRepo.GetByMobile(ctx, mobile)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	return s.tokenRepo.RevokeAllForUser(ctx, user.ID)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

// PurgeExpiredSessions deletes refresh token rows past their expiry. Revoked
// but unexpired rows are kept so reuse of a rotated token still fails loudly.
func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx)
}

// issue generates a token pair and persists the refresh token, evicting the
// oldest session when the per-user cap is reached.
func (s *authService) issue(ctx context.Context, user *domain.User) (*AuthResult, error) {
	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if s.cfg.MaxSessionsPerUser > 0 {
		active, err := s.tokenRepo.CountActiveForUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("auth.issue: %w", err)
		}
		if active >= s.cfg.MaxSessionsPerUser {
			if err := s.tokenRepo.RevokeOldestForUser(ctx, user.ID); err != nil {
				return nil, fmt.Errorf("auth.issue: %w", err)
			}
		}
	}

	record := &domain.RefreshToken{
		Token:     pair.RefreshToken,
		UserID:    user.ID,
		Mobile:    user.Mobile,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenExpiry),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("auth.issue: %w", err)
	}

	return &AuthResult{User: user, Tokens: pair}, nil
}

func (s *authService) generateTokenPair(user *domain.User) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenExpiry)
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiry)

	accessClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"access"},
		},
		UserID: user.ID,
		Mobile: user.Mobile,
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"refresh"},
		},
		UserID: user.ID,
		Mobile: user.Mobile,
	}

	refreshTokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshTokenObj.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	found := false
	for _, a := range aud {
		if a == audience {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
