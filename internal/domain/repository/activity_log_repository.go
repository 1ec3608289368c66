package repository

import (
	"context"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// ActivityLogRepository puerto de solo-agregar para la bitácora. List devuelve lo más reciente primero.
type ActivityLogRepository interface {
	List(ctx context.Context) ([]*entity.ActivityLog, error)
	Create(ctx context.Context, log *entity.ActivityLog) error
}
