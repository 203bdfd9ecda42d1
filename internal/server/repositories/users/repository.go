package users

import (
	"context"

	"github.com/dmitrijs2005/onepass/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateWrappedKey(ctx context.Context, id string, wrappedKey []byte, iterations int) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]*models.User, error)
}
