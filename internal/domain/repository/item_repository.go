package repository

import (
	"context"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	List(ctx context.Context) ([]*entity.Item, error)
	Create(ctx context.Context, item *entity.Item) error
	// CreateMany inserta todas las filas o ninguna.
	CreateMany(ctx context.Context, items []*entity.Item) error
	Update(ctx context.Context, id string, patch entity.ItemPatch) error
	Delete(ctx context.Context, id string) error
}
