package entries

import (
	"context"

	"github.com/dmitrijs2005/onepass/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.VaultEntry) (*models.VaultEntry, error)
	Get(ctx context.Context, id int64, ownerID string) (*models.VaultEntry, error)
	Update(ctx context.Context, entry *models.VaultEntry) error
	Delete(ctx context.Context, id int64, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.VaultEntry, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	All(ctx context.Context) ([]*models.VaultEntry, error)
}
