package services

import (
	"context"
	"errors"
	"log"

	"cooploan/internal/adapters/persistence/models"
	"cooploan/internal/adapters/persistence/repositories"
	"cooploan/internal/config"
	"cooploan/internal/pkg/jwt"
	"cooploan/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrMemberInactive     = errors.New("member account is inactive")
)

// AuthService handles authentication business logic
type AuthService struct {
	memberRepo       repositories.MemberRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	memberRepo repositories.MemberRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		memberRepo:       memberRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Member       *models.MemberResponse `json:"member"`
	AccessToken  string                 `json:"accessToken"`
	RefreshToken string                 `json:"refreshToken"`
}

// Login authenticates a member by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find member by email
	member, err := s.memberRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if member is active
	if !member.IsActive {
		return nil, ErrMemberInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, member.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Generate tokens
	tokens, err := s.generateTokens(member)
	if err != nil {
		return nil, err
	}

	// 5. Store refresh token
	if err := s.storeRefreshToken(ctx, member.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Member logged in: %s", member.Email)

	return &AuthResponse{
		Member:       member.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken rotates the refresh token and issues a new access token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Hash the token to find in DB
	tokenHash := password.HashToken(refreshToken)

	// 3. Find token in DB
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 4. Check revocation and expiry
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 5. Get member
	member, err := s.memberRepo.GetByID(ctx, claims.MemberID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !member.IsActive {
		return nil, ErrMemberInactive
	}

	// 6. Revoke old refresh token (rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	// 7. Generate and store new tokens
	tokens, err := s.generateTokens(member)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, member.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for member: %s", member.Email)

	return &AuthResponse{
		Member:       member.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)

	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ Member logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a member
func (s *AuthService) LogoutAll(ctx context.Context, memberID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByMemberID(ctx, memberID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for member ID: %d", memberID)
	return nil
}

// GetProfile returns the authenticated member's profile
func (s *AuthService) GetProfile(ctx context.Context, memberID uint) (*models.MemberResponse, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member.ToResponse(), nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// generateTokens generates an access and refresh token pair
func (s *AuthService) generateTokens(member *models.Member) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		member.ID,
		member.Email,
		member.Name,
		member.IsAdmin,
		member.IsSuperAdmin,
		member.CanAddMembers,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		member.ID,
		uuid.New().String(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken persists a hashed refresh token
func (s *AuthService) storeRefreshToken(ctx context.Context, memberID uint, refreshToken string) error {
	token := &models.RefreshToken{
		MemberID:  memberID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	return s.refreshTokenRepo.Create(ctx, token)
}
