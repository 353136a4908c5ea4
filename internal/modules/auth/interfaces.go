package auth

import (
	"context"

	"gorm.io/gorm"

	"gymstudio/internal/domain"
)

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DB() *gorm.DB // registration writes user and member in one transaction
}

type tokenIssuer interface {
	GenerateToken(userID int64, email, role string) (string, error)
}
