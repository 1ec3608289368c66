package repository

import (
	"context"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// LabRepository define el puerto de persistencia para Lab.
// Create solo lo usa el seed; el store únicamente actualiza laboratorios.
type LabRepository interface {
	List(ctx context.Context) ([]*entity.Lab, error)
	Create(ctx context.Context, lab *entity.Lab) error
	Update(ctx context.Context, id string, patch entity.LabPatch) error
}
