package repositories

import (
	"context"

	"cooploan/internal/adapters/persistence/models"
)

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
	ListByOrganization(ctx context.Context, organizationID uint) ([]*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByOrganization(ctx context.Context, organizationID uint) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	ListActive(ctx context.Context) ([]*models.Member, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	GetByMemberID(ctx context.Context, memberID uint) ([]*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByMemberID(ctx context.Context, memberID uint) error
	DeleteExpired(ctx context.Context) error
}
